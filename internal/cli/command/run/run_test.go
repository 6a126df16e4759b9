package run

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matebuild/internal/models"
)

func TestDeriveProjectName(t *testing.T) {
	tests := []struct {
		name    string
		repoURL string
		want    string
	}{
		{name: "plain url", repoURL: "https://github.com/octocat/hello-world", want: "hello-world"},
		{name: "git suffix stripped", repoURL: "https://github.com/octocat/hello-world.git", want: "hello-world"},
		{name: "trailing slash", repoURL: "https://github.com/octocat/hello-world/", want: "hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveProjectName(tt.repoURL))
		})
	}
}

func TestModelInterrupt(t *testing.T) {
	t.Run("ctrl+c cancels the worker and keeps draining", func(t *testing.T) {
		events := make(chan models.ProgressEvent)
		results := make(chan runResult, 1)
		cancelled := false

		m := initialModel(events, results, func() { cancelled = true })
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

		assert.True(t, cancelled)
		assert.Nil(t, cmd)
		assert.False(t, updated.(model).done)
	})

	t.Run("ctrl+c without a cancel function does not panic", func(t *testing.T) {
		m := initialModel(nil, nil, nil)

		assert.NotPanics(t, func() {
			m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		})
	})

	t.Run("other keys are ignored", func(t *testing.T) {
		cancelled := false
		m := initialModel(nil, nil, func() { cancelled = true })

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

		assert.False(t, cancelled)
		assert.Nil(t, cmd)
	})

	t.Run("worker result ends the view", func(t *testing.T) {
		results := make(chan runResult, 1)
		results <- runResult{err: context.Canceled}
		m := initialModel(nil, results, nil)

		closed, cmd := m.Update(streamClosedMsg{})
		require.NotNil(t, cmd)

		final, quit := closed.(model).Update(cmd())

		require.NotNil(t, quit)
		assert.Equal(t, tea.QuitMsg{}, quit())
		require.NotNil(t, final.(model).result)
		assert.ErrorIs(t, final.(model).result.err, context.Canceled)
	})
}

func TestProgressViewStopsAfterInterrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan models.ProgressEvent, 1)
	results := make(chan runResult, 1)
	events <- models.ProgressEvent{Type: models.ProgressStage, Message: "Analyzing sources"}

	// Worker stand-in: blocks until cancelled, then shuts the stream down
	// the same way the real goroutine does.
	go func() {
		<-ctx.Done()
		close(events)
		results <- runResult{err: ctx.Err()}
	}()

	p := tea.NewProgram(
		initialModel(events, results, cancel),
		tea.WithInput(bytes.NewReader([]byte{0x03})),
		tea.WithOutput(io.Discard),
	)

	type outcome struct {
		final tea.Model
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		final, err := p.Run()
		done <- outcome{final: final, err: err}
	}()

	select {
	case out := <-done:
		require.NoError(t, out.err)
		res := out.final.(model).result
		require.NotNil(t, res)
		assert.ErrorIs(t, res.err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("progress view still running after ctrl+c")
	}
}
