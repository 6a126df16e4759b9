// Package registry keeps the catalogue of repository hosting providers.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/thomas-vilte/matebuild/internal/ports"
)

// RepoProviderFactory defines the interface for creating repository clients.
type RepoProviderFactory interface {
	// CreateClient creates a client for the repository at repoURL using the
	// given access token.
	CreateClient(ctx context.Context, repoURL, token string) (ports.RepoClient, error)

	// ValidateConfig checks the credentials for this provider.
	ValidateConfig(token string) error

	// Name returns the provider name.
	Name() string
}

// RepoProviderRegistry manages the registered hosting providers.
type RepoProviderRegistry struct {
	mu        sync.RWMutex
	factories map[string]RepoProviderFactory
}

func NewRepoProviderRegistry() *RepoProviderRegistry {
	return &RepoProviderRegistry{
		factories: make(map[string]RepoProviderFactory),
	}
}

// Register adds a new provider to the registry.
func (r *RepoProviderRegistry) Register(name string, factory RepoProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("VCS provider '%s' is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// Get returns a factory by name.
func (r *RepoProviderRegistry) Get(name string) (RepoProviderFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("VCS provider '%s' not found in registry", name)
	}

	return factory, nil
}

// List returns the names of the registered providers.
func (r *RepoProviderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for name := range r.factories {
		providers = append(providers, name)
	}
	return providers
}

// IsRegistered reports whether a provider is registered.
func (r *RepoProviderRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}
