package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
)

// Environment variable names for the two required secrets.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGitHubToken  = "GITHUB_TOKEN"
)

const secretsTemplate = `# API keys for matebuild
GEMINI_API_KEY=your_gemini_api_key_here
GITHUB_TOKEN=your_github_token_here
`

// Secrets holds the credentials read from the environment or the secrets
// file. Values equal to the template placeholders count as missing.
type Secrets struct {
	GeminiAPIKey string
	GitHubToken  string
}

// SecretsPath returns the location of the secrets file next to the config.
func SecretsPath(homeDir string) string {
	return filepath.Join(homeDir, ".matebuild", ".env")
}

// EnsureSecretsFile creates a template secrets file if none exists. It
// reports whether the file was created by this call.
func EnsureSecretsFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("error creating secrets directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(secretsTemplate), 0600); err != nil {
		return false, fmt.Errorf("error writing secrets template: %w", err)
	}
	return true, nil
}

// LoadSecrets reads the secrets file (when present) into the process
// environment and returns the resulting credentials. Values already set in
// the environment win over the file.
func LoadSecrets(path string) (*Secrets, error) {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("error loading secrets file: %w", err)
		}
	}

	return &Secrets{
		GeminiAPIKey: cleanSecret(os.Getenv(EnvGeminiAPIKey)),
		GitHubToken:  cleanSecret(os.Getenv(EnvGitHubToken)),
	}, nil
}

// ReloadSecrets re-reads the secrets file, letting file values override the
// current environment.
func ReloadSecrets(path string) (*Secrets, error) {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Overload(path); err != nil {
			return nil, fmt.Errorf("error reloading secrets file: %w", err)
		}
	}

	return &Secrets{
		GeminiAPIKey: cleanSecret(os.Getenv(EnvGeminiAPIKey)),
		GitHubToken:  cleanSecret(os.Getenv(EnvGitHubToken)),
	}, nil
}

// Validate returns a configuration error for the first missing credential.
func (s *Secrets) Validate() error {
	if s.GeminiAPIKey == "" {
		return domainErrors.ErrGeminiKeyMissing
	}
	if s.GitHubToken == "" {
		return domainErrors.ErrGitHubTokenMissing
	}
	return nil
}

func cleanSecret(v string) string {
	switch v {
	case "your_gemini_api_key_here", "your_github_token_here":
		return ""
	}
	return v
}
