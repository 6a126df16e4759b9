package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
)

func TestEnsureSecretsFile(t *testing.T) {
	t.Run("creates a template on first call", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".matebuild", ".env")

		created, err := EnsureSecretsFile(path)

		require.NoError(t, err)
		assert.True(t, created)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), EnvGeminiAPIKey)
		assert.Contains(t, string(data), EnvGitHubToken)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("leaves an existing file alone", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=real\n"), 0600))

		created, err := EnsureSecretsFile(path)

		require.NoError(t, err)
		assert.False(t, created)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "GEMINI_API_KEY=real\n", string(data))
	})
}

func TestLoadSecrets(t *testing.T) {
	t.Run("reads keys from the secrets file", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "")
		t.Setenv(EnvGitHubToken, "")
		os.Unsetenv(EnvGeminiAPIKey)
		os.Unsetenv(EnvGitHubToken)

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=gem\nGITHUB_TOKEN=ghp\n"), 0600))

		secrets, err := LoadSecrets(path)

		require.NoError(t, err)
		assert.Equal(t, "gem", secrets.GeminiAPIKey)
		assert.Equal(t, "ghp", secrets.GitHubToken)
	})

	t.Run("environment values win over the file", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "from-env")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=from-file\n"), 0600))

		secrets, err := LoadSecrets(path)

		require.NoError(t, err)
		assert.Equal(t, "from-env", secrets.GeminiAPIKey)
	})

	t.Run("template placeholders count as missing", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "your_gemini_api_key_here")
		t.Setenv(EnvGitHubToken, "your_github_token_here")

		secrets, err := LoadSecrets(filepath.Join(t.TempDir(), "absent.env"))

		require.NoError(t, err)
		assert.Empty(t, secrets.GeminiAPIKey)
		assert.Empty(t, secrets.GitHubToken)
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "gem")
		t.Setenv(EnvGitHubToken, "ghp")

		secrets, err := LoadSecrets(filepath.Join(t.TempDir(), "absent.env"))

		require.NoError(t, err)
		assert.Equal(t, "gem", secrets.GeminiAPIKey)
	})
}

func TestReloadSecrets(t *testing.T) {
	t.Run("file values override the environment", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "stale")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=fresh\n"), 0600))

		secrets, err := ReloadSecrets(path)

		require.NoError(t, err)
		assert.Equal(t, "fresh", secrets.GeminiAPIKey)
	})
}

func TestSecretsValidate(t *testing.T) {
	t.Run("reports the missing gemini key first", func(t *testing.T) {
		err := (&Secrets{}).Validate()

		assert.ErrorIs(t, err, domainErrors.ErrGeminiKeyMissing)
	})

	t.Run("reports a missing github token", func(t *testing.T) {
		err := (&Secrets{GeminiAPIKey: "gem"}).Validate()

		assert.ErrorIs(t, err, domainErrors.ErrGitHubTokenMissing)
	})

	t.Run("passes with both credentials", func(t *testing.T) {
		err := (&Secrets{GeminiAPIKey: "gem", GitHubToken: "ghp"}).Validate()

		assert.NoError(t, err)
	})
}
