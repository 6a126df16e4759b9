// Package di wires configuration, credentials and provider registries into
// ready-to-use services.
package di

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/matebuild/internal/ai"
	"github.com/thomas-vilte/matebuild/internal/ai/heuristic"
	airegistry "github.com/thomas-vilte/matebuild/internal/ai/registry"
	"github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/ports"
	"github.com/thomas-vilte/matebuild/internal/services"
	vcsregistry "github.com/thomas-vilte/matebuild/internal/vcs/registry"
)

// Container manages the application dependencies.
type Container struct {
	config       *config.Config
	translations *i18n.Translations
	secrets      *config.Secrets

	aiRegistry  *airegistry.AdvisorRegistry
	vcsRegistry *vcsregistry.RepoProviderRegistry
}

func NewContainer(cfg *config.Config, trans *i18n.Translations, secrets *config.Secrets) *Container {
	return &Container{
		config:       cfg,
		translations: trans,
		secrets:      secrets,
		aiRegistry:   airegistry.NewAdvisorRegistry(),
		vcsRegistry:  vcsregistry.NewRepoProviderRegistry(),
	}
}

// RegisterAIProvider registers an AI provider.
func (c *Container) RegisterAIProvider(name string, factory airegistry.AdvisorFactory) error {
	return c.aiRegistry.Register(name, factory)
}

// RegisterVCSProvider registers a repository hosting provider.
func (c *Container) RegisterVCSProvider(name string, factory vcsregistry.RepoProviderFactory) error {
	return c.vcsRegistry.Register(name, factory)
}

// GetAdvisor builds the active model-backed advisor, decorated with the
// deterministic fallback so a failing provider degrades instead of aborting.
func (c *Container) GetAdvisor(ctx context.Context) (ports.BuildAdvisor, error) {
	activeAI := c.config.AIConfig.ActiveAI
	if activeAI == "" {
		activeAI = config.AIGemini
	}

	factory, err := c.aiRegistry.Get(string(activeAI))
	if err != nil {
		return nil, fmt.Errorf("AI provider '%s' not available: %w", activeAI, err)
	}

	if err := factory.ValidateConfig(c.config, c.secrets); err != nil {
		return nil, err
	}

	primary, err := factory.CreateAdvisor(ctx, c.config, c.secrets, c.translations)
	if err != nil {
		return nil, err
	}

	return ai.NewResilientAdvisor(primary, heuristic.NewAdvisor()), nil
}

// GetRepoClient builds a client for the repository at repoURL using the
// active hosting provider.
func (c *Container) GetRepoClient(ctx context.Context, repoURL string) (ports.RepoClient, error) {
	factory, err := c.vcsRegistry.Get("github")
	if err != nil {
		return nil, fmt.Errorf("VCS provider not available: %w", err)
	}

	if err := factory.ValidateConfig(c.secrets.GitHubToken); err != nil {
		return nil, err
	}

	return factory.CreateClient(ctx, repoURL, c.secrets.GitHubToken)
}

// GetAutomationService assembles a ready-to-run automation service for the
// repository at repoURL.
func (c *Container) GetAutomationService(ctx context.Context, repoURL string) (*services.AutomationService, error) {
	repoClient, err := c.GetRepoClient(ctx, repoURL)
	if err != nil {
		return nil, err
	}

	advisor, err := c.GetAdvisor(ctx)
	if err != nil {
		return nil, err
	}

	return services.NewAutomationService(repoClient, advisor, c.config, c.translations), nil
}

// SetSecrets swaps the credentials, used after a secrets reload.
func (c *Container) SetSecrets(secrets *config.Secrets) {
	c.secrets = secrets
}

func (c *Container) GetConfig() *config.Config {
	return c.config
}

func (c *Container) GetSecrets() *config.Secrets {
	return c.secrets
}

func (c *Container) GetTranslations() *i18n.Translations {
	return c.translations
}
