package ports

import (
	"context"

	"github.com/thomas-vilte/matebuild/internal/models"
)

// RepoClient abstracts file access and CI queries against a hosted
// repository. All operations are single request/response calls; retry and
// pacing policy belongs to the caller.
type RepoClient interface {
	// GetFile returns the decoded content of a file, or ErrFileNotFound.
	GetFile(ctx context.Context, path string) (string, error)

	// CreateOrUpdateFile writes content at path with the given commit
	// message, updating in place when the file already exists.
	CreateOrUpdateFile(ctx context.Context, path, content, message string) error

	// ListDirectory lists the entries directly under path ("" for the root).
	ListDirectory(ctx context.Context, path string) ([]models.RepoEntry, error)

	// ListWorkflowRuns returns the most recent CI runs, newest first.
	ListWorkflowRuns(ctx context.Context) ([]models.RunSummary, error)

	// GetRunStatus fetches the current lifecycle and outcome of a run.
	GetRunStatus(ctx context.Context, runID int64) (models.RunStatus, error)

	// GetRunLogs fetches the full log text of a run.
	GetRunLogs(ctx context.Context, runID int64) (string, error)
}
