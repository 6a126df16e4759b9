// Package secrets manages the credentials file from the CLI.
package secrets

import (
	"context"
	"fmt"
	"os"

	cfg "github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/di"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/ui"
	"github.com/urfave/cli/v3"
)

type SecretsCommandFactory struct {
	container   *di.Container
	secretsPath string
}

func NewSecretsCommandFactory(container *di.Container, secretsPath string) *SecretsCommandFactory {
	return &SecretsCommandFactory{
		container:   container,
		secretsPath: secretsPath,
	}
}

func (f *SecretsCommandFactory) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "secrets",
		Usage: t.GetMessage("secrets_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newInitCommand(t),
			f.newPathCommand(t),
			f.newReloadCommand(t),
		},
	}
}

func (f *SecretsCommandFactory) newInitCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("secrets_init_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			created, err := cfg.EnsureSecretsFile(f.secretsPath)
			if err != nil {
				return err
			}
			if created {
				ui.PrintSuccess(os.Stdout, t.GetMessage("secrets_created", 0, map[string]interface{}{"Path": f.secretsPath}))
			} else {
				ui.PrintInfo(t.GetMessage("secrets_exists", 0, map[string]interface{}{"Path": f.secretsPath}))
			}
			return nil
		},
	}
}

func (f *SecretsCommandFactory) newPathCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: t.GetMessage("secrets_path_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Println(f.secretsPath)
			return nil
		},
	}
}

func (f *SecretsCommandFactory) newReloadCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "reload",
		Usage: t.GetMessage("secrets_reload_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			secrets, err := cfg.ReloadSecrets(f.secretsPath)
			if err != nil {
				return err
			}
			f.container.SetSecrets(secrets)

			report := []struct {
				key   string
				value string
			}{
				{cfg.EnvGeminiAPIKey, secrets.GeminiAPIKey},
				{cfg.EnvGitHubToken, secrets.GitHubToken},
			}
			for _, item := range report {
				if item.value != "" {
					ui.PrintSuccess(os.Stdout, t.GetMessage("secrets_key_present", 0, map[string]interface{}{"Key": item.key}))
				} else {
					ui.PrintWarning(t.GetMessage("secrets_key_missing", 0, map[string]interface{}{"Key": item.key}))
				}
			}
			return nil
		},
	}
}
