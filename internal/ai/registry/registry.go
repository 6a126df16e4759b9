// Package registry keeps the catalogue of AI providers that can back the
// build advisor.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

// AdvisorFactory defines the interface for creating build advisors.
type AdvisorFactory interface {
	// CreateAdvisor creates an advisor using the given configuration and
	// credentials.
	CreateAdvisor(ctx context.Context, cfg *config.Config, secrets *config.Secrets, trans *i18n.Translations) (ports.BuildAdvisor, error)

	// ValidateConfig checks the configuration for this provider.
	ValidateConfig(cfg *config.Config, secrets *config.Secrets) error

	// Name returns the provider name.
	Name() string
}

// AdvisorRegistry manages the registered AI providers.
type AdvisorRegistry struct {
	mu        sync.RWMutex
	factories map[string]AdvisorFactory
}

func NewAdvisorRegistry() *AdvisorRegistry {
	return &AdvisorRegistry{
		factories: make(map[string]AdvisorFactory),
	}
}

// Register adds a new provider to the registry.
func (r *AdvisorRegistry) Register(name string, factory AdvisorFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("AI provider '%s' is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// Get returns a factory by name.
func (r *AdvisorRegistry) Get(name string) (AdvisorFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("AI provider '%s' not found in registry", name)
	}

	return factory, nil
}

// List returns the names of the registered providers.
func (r *AdvisorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for name := range r.factories {
		providers = append(providers, name)
	}
	return providers
}

// IsRegistered reports whether a provider is registered.
func (r *AdvisorRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}
