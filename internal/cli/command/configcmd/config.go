// Package configcmd exposes the persisted configuration over the CLI.
package configcmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/ui"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (f *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("config_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newShowCommand(t, cfg),
			f.newSetCommand(t, cfg),
		},
	}
}

func (f *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━\n")
			ui.PrintKeyValue("target_platforms", strings.Join(cfg.TargetPlatforms, ", "))
			ui.PrintKeyValue("max_fix_attempts", strconv.Itoa(cfg.MaxFixAttempts))
			ui.PrintKeyValue("ci_timeout_seconds", strconv.Itoa(cfg.CITimeoutSeconds))
			ui.PrintKeyValue("auto_commit", strconv.FormatBool(cfg.AutoCommit))
			ui.PrintKeyValue("verbose_logging", strconv.FormatBool(cfg.VerboseLogging))
			ui.PrintKeyValue("language", cfg.Language)
			ui.PrintKeyValue("active_ai", string(cfg.AIConfig.ActiveAI))
			ui.PrintKeyValue("model", string(cfg.AIConfig.Model))
			return nil
		},
	}
}

func (f *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: t.GetMessage("config_set_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "platforms",
				Usage: "Comma-separated target platforms (ubuntu, windows, macos)",
			},
			&cli.IntFlag{
				Name:  "max-attempts",
				Usage: "Maximum automatic fix attempts (1-10)",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Per-attempt CI timeout in seconds",
			},
			&cli.BoolFlag{
				Name:  "auto-commit",
				Usage: "Push generated files and fixes automatically",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose logging",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Interface language (en, es)",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "AI model to use",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.IsSet("platforms") {
				platforms := strings.Split(command.String("platforms"), ",")
				for i := range platforms {
					platforms[i] = strings.TrimSpace(platforms[i])
				}
				cfg.TargetPlatforms = platforms
			}
			if command.IsSet("max-attempts") {
				cfg.MaxFixAttempts = int(command.Int("max-attempts"))
			}
			if command.IsSet("timeout") {
				cfg.CITimeoutSeconds = int(command.Int("timeout"))
			}
			if command.IsSet("auto-commit") {
				cfg.AutoCommit = command.Bool("auto-commit")
			}
			if command.IsSet("verbose") {
				cfg.VerboseLogging = command.Bool("verbose")
			}
			if command.IsSet("lang") {
				cfg.Language = command.String("lang")
			}
			if command.IsSet("model") {
				cfg.AIConfig.Model = config.Model(command.String("model"))
			}

			if err := config.SaveConfig(cfg); err != nil {
				ui.PrintWarning(t.GetMessage("config_invalid", 0, map[string]interface{}{"Error": err.Error()}))
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_updated", 0, nil))
			return nil
		},
	}
}
