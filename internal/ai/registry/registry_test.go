package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

type stubFactory struct {
	name string
}

func (f *stubFactory) CreateAdvisor(context.Context, *config.Config, *config.Secrets, *i18n.Translations) (ports.BuildAdvisor, error) {
	return nil, nil
}

func (f *stubFactory) ValidateConfig(*config.Config, *config.Secrets) error {
	return nil
}

func (f *stubFactory) Name() string {
	return f.name
}

func TestAdvisorRegistry(t *testing.T) {
	t.Run("registers and retrieves a provider", func(t *testing.T) {
		reg := NewAdvisorRegistry()
		factory := &stubFactory{name: "gemini"}

		require.NoError(t, reg.Register("gemini", factory))

		got, err := reg.Get("gemini")
		require.NoError(t, err)
		assert.Equal(t, factory, got)
		assert.True(t, reg.IsRegistered("gemini"))
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		reg := NewAdvisorRegistry()
		require.NoError(t, reg.Register("gemini", &stubFactory{name: "gemini"}))

		err := reg.Register("gemini", &stubFactory{name: "gemini"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("unknown provider lookup fails", func(t *testing.T) {
		reg := NewAdvisorRegistry()

		_, err := reg.Get("claude")

		require.Error(t, err)
		assert.False(t, reg.IsRegistered("claude"))
	})

	t.Run("lists registered providers", func(t *testing.T) {
		reg := NewAdvisorRegistry()
		require.NoError(t, reg.Register("gemini", &stubFactory{name: "gemini"}))
		require.NoError(t, reg.Register("other", &stubFactory{name: "other"}))

		assert.ElementsMatch(t, []string{"gemini", "other"}, reg.List())
	})
}
