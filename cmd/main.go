package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/thomas-vilte/matebuild/internal/ai/gemini"
	"github.com/thomas-vilte/matebuild/internal/cli/command/configcmd"
	"github.com/thomas-vilte/matebuild/internal/cli/command/run"
	"github.com/thomas-vilte/matebuild/internal/cli/command/secrets"
	"github.com/thomas-vilte/matebuild/internal/cli/registry"
	cfg "github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/di"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/logger"
	"github.com/thomas-vilte/matebuild/internal/ui"
	"github.com/thomas-vilte/matebuild/internal/vcs/github"
	"github.com/thomas-vilte/matebuild/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(err)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el directorio del usuario: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	logger.Initialize(false, cfgApp.VerboseLogging)

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		log.Fatalf("Error al cargar las traducciones: %v", err)
	}

	if err := cfg.SaveConfig(cfgApp); err != nil {
		return nil, err
	}

	secretsPath := cfg.SecretsPath(homeDir)
	if _, err := cfg.EnsureSecretsFile(secretsPath); err != nil {
		return nil, err
	}
	appSecrets, err := cfg.LoadSecrets(secretsPath)
	if err != nil {
		return nil, err
	}

	container := di.NewContainer(cfgApp, translations, appSecrets)

	if err := container.RegisterAIProvider("gemini", gemini.NewAdvisorFactory()); err != nil {
		log.Printf("Warning: no se pudo registrar el proveedor Gemini: %v", err)
	}

	if err := container.RegisterVCSProvider("github", github.NewProviderFactory()); err != nil {
		log.Printf("Warning: no se pudo registrar el proveedor de GitHub: %v", err)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("run", run.NewRunCommandFactory(container)); err != nil {
		log.Fatalf("Error al registrar el comando 'run': %v", err)
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		log.Fatalf("Error al registrar el comando 'config': %v", err)
	}

	if err := registerCommand.Register("secrets", secrets.NewSecretsCommandFactory(container, secretsPath)); err != nil {
		log.Fatalf("Error al registrar el comando 'secrets': %v", err)
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "matebuild",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}
