package github

import (
	"context"
	"net/url"
	"strings"

	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

// ProviderFactory creates GitHub repository clients.
type ProviderFactory struct{}

func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// CreateClient builds a client for the repository at repoURL.
func (f *ProviderFactory) CreateClient(_ context.Context, repoURL, token string) (ports.RepoClient, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	return NewClient(owner, repo, token), nil
}

// ValidateConfig checks the credentials for this provider.
func (f *ProviderFactory) ValidateConfig(token string) error {
	if token == "" {
		return domainErrors.ErrGitHubTokenMissing
	}
	return nil
}

// Name returns the provider name.
func (f *ProviderFactory) Name() string {
	return "github"
}

// ParseRepoURL extracts owner and repository name from a GitHub URL such as
// https://github.com/owner/repo or https://github.com/owner/repo.git.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	if repoURL == "" {
		return "", "", domainErrors.ErrRepoURLRequired
	}

	parsed, err := url.Parse(repoURL)
	if err != nil {
		return "", "", domainErrors.ErrInvalidRepoURL.WithError(err)
	}

	if !strings.EqualFold(parsed.Host, "github.com") {
		return "", "", domainErrors.ErrInvalidRepoURL.WithContext("url", repoURL)
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", domainErrors.ErrInvalidRepoURL.WithContext("url", repoURL)
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
