package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFileSetClone(t *testing.T) {
	original := BuildFileSet{ManifestPath: "{}"}

	clone := original.Clone()
	clone[ManifestPath] = "changed"
	clone[WorkflowPath] = "added"

	assert.Equal(t, "{}", original[ManifestPath])
	assert.NotContains(t, original, WorkflowPath)
}

func TestBuildFilePaths(t *testing.T) {
	assert.Equal(t, []string{ManifestPath, BuildScriptPath, WorkflowPath}, BuildFilePaths())
}

func TestRunStatusCompleted(t *testing.T) {
	assert.True(t, RunStatus{Lifecycle: RunCompleted}.Completed())
	assert.False(t, RunStatus{Lifecycle: RunInProgress}.Completed())
	assert.False(t, RunStatus{Lifecycle: RunQueued}.Completed())
}

func TestFixResultHasFileChanges(t *testing.T) {
	assert.False(t, (&FixResult{}).HasFileChanges())
	assert.True(t, (&FixResult{ManifestChanges: "{}"}).HasFileChanges())
	assert.True(t, (&FixResult{WorkflowChanges: "name: Build"}).HasFileChanges())
	assert.False(t, (&FixResult{CodeChanges: map[string]CodeEdit{"a.cpp": {}}}).HasFileChanges())
}

func TestProgressFuncEmit(t *testing.T) {
	t.Run("nil func is safe", func(t *testing.T) {
		var f ProgressFunc
		assert.NotPanics(t, func() {
			f.Emit(ProgressEvent{Type: ProgressStage, Message: "x"})
		})
	})

	t.Run("events reach the callback", func(t *testing.T) {
		var got []ProgressEvent
		f := ProgressFunc(func(ev ProgressEvent) { got = append(got, ev) })

		f.Emit(ProgressEvent{Type: ProgressWarning, Message: "careful"})

		assert.Len(t, got, 1)
		assert.Equal(t, ProgressWarning, got[0].Type)
	})
}
