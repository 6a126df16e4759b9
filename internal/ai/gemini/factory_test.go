package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thomas-vilte/matebuild/internal/config"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
)

func TestAdvisorFactory(t *testing.T) {
	factory := NewAdvisorFactory()

	t.Run("name matches the provider identifier", func(t *testing.T) {
		assert.Equal(t, "gemini", factory.Name())
	})

	t.Run("validation fails without an API key", func(t *testing.T) {
		err := factory.ValidateConfig(&config.Config{}, &config.Secrets{})

		assert.ErrorIs(t, err, domainErrors.ErrGeminiKeyMissing)
	})

	t.Run("validation fails with nil secrets", func(t *testing.T) {
		err := factory.ValidateConfig(&config.Config{}, nil)

		assert.ErrorIs(t, err, domainErrors.ErrGeminiKeyMissing)
	})

	t.Run("validation passes with a key", func(t *testing.T) {
		err := factory.ValidateConfig(&config.Config{}, &config.Secrets{GeminiAPIKey: "key"})

		assert.NoError(t, err)
	})
}
