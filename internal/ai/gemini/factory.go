package gemini

import (
	"context"

	"github.com/thomas-vilte/matebuild/internal/config"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

// AdvisorFactory creates Gemini-backed build advisors.
type AdvisorFactory struct{}

func NewAdvisorFactory() *AdvisorFactory {
	return &AdvisorFactory{}
}

// CreateAdvisor builds an advisor with the configured model.
func (f *AdvisorFactory) CreateAdvisor(ctx context.Context, cfg *config.Config, secrets *config.Secrets, trans *i18n.Translations) (ports.BuildAdvisor, error) {
	return NewAdvisor(ctx, secrets.GeminiAPIKey, cfg, trans)
}

// ValidateConfig checks that the credentials for this provider are present.
func (f *AdvisorFactory) ValidateConfig(cfg *config.Config, secrets *config.Secrets) error {
	if secrets == nil || secrets.GeminiAPIKey == "" {
		return domainErrors.ErrGeminiKeyMissing
	}
	return nil
}

// Name returns the provider name.
func (f *AdvisorFactory) Name() string {
	return string(config.AIGemini)
}
