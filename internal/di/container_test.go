package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	airegistry "github.com/thomas-vilte/matebuild/internal/ai/registry"
	"github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

type stubAdvisorFactory struct {
	advisor ports.BuildAdvisor
}

func (f *stubAdvisorFactory) CreateAdvisor(context.Context, *config.Config, *config.Secrets, *i18n.Translations) (ports.BuildAdvisor, error) {
	return f.advisor, nil
}

func (f *stubAdvisorFactory) ValidateConfig(*config.Config, *config.Secrets) error {
	return nil
}

func (f *stubAdvisorFactory) Name() string { return "gemini" }

var _ airegistry.AdvisorFactory = (*stubAdvisorFactory)(nil)

func setupContainer(t *testing.T) *Container {
	t.Helper()
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	cfg := &config.Config{
		TargetPlatforms:  []string{"ubuntu"},
		MaxFixAttempts:   5,
		CITimeoutSeconds: 300,
		Language:         "en",
		AIConfig:         config.AIConfig{ActiveAI: config.AIGemini},
	}
	secrets := &config.Secrets{GeminiAPIKey: "gem", GitHubToken: "ghp"}
	return NewContainer(cfg, trans, secrets)
}

func TestContainer(t *testing.T) {
	t.Run("advisor lookup fails when no provider is registered", func(t *testing.T) {
		container := setupContainer(t)

		_, err := container.GetAdvisor(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not available")
	})

	t.Run("registered advisor is wrapped with the fallback", func(t *testing.T) {
		container := setupContainer(t)
		require.NoError(t, container.RegisterAIProvider("gemini", &stubAdvisorFactory{}))

		advisor, err := container.GetAdvisor(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, advisor)
	})

	t.Run("duplicate provider registration fails", func(t *testing.T) {
		container := setupContainer(t)
		require.NoError(t, container.RegisterAIProvider("gemini", &stubAdvisorFactory{}))

		assert.Error(t, container.RegisterAIProvider("gemini", &stubAdvisorFactory{}))
	})

	t.Run("repo client lookup fails when no provider is registered", func(t *testing.T) {
		container := setupContainer(t)

		_, err := container.GetRepoClient(context.Background(), "https://github.com/octocat/hello-world")

		require.Error(t, err)
	})

	t.Run("set secrets swaps the credentials", func(t *testing.T) {
		container := setupContainer(t)

		container.SetSecrets(&config.Secrets{GeminiAPIKey: "new"})

		assert.Equal(t, "new", container.GetSecrets().GeminiAPIKey)
		assert.Empty(t, container.GetSecrets().GitHubToken)
	})

	t.Run("accessors expose the wiring", func(t *testing.T) {
		container := setupContainer(t)

		assert.NotNil(t, container.GetConfig())
		assert.NotNil(t, container.GetTranslations())
		assert.NotNil(t, container.GetSecrets())
	})
}
