package models

// RunLifecycle is the coarse state GitHub Actions reports for a workflow run.
type RunLifecycle string

const (
	RunQueued     RunLifecycle = "queued"
	RunInProgress RunLifecycle = "in_progress"
	RunCompleted  RunLifecycle = "completed"
)

// RunOutcome is the conclusion of a completed run. Unknown covers both
// conclusions we do not recognize and runs that never completed in time.
type RunOutcome string

const (
	OutcomeSuccess   RunOutcome = "success"
	OutcomeFailure   RunOutcome = "failure"
	OutcomeCancelled RunOutcome = "cancelled"
	OutcomeUnknown   RunOutcome = "unknown"
)

// RunStatus is a point-in-time snapshot of a CI run. It is polled, never
// persisted.
type RunStatus struct {
	Lifecycle RunLifecycle
	Outcome   RunOutcome
	URL       string
}

// Completed reports whether the run reached a terminal lifecycle state.
func (s RunStatus) Completed() bool {
	return s.Lifecycle == RunCompleted
}

// RunSummary identifies a recent workflow run.
type RunSummary struct {
	ID  int64
	URL string
}

// RepoEntry is one item of a repository directory listing.
type RepoEntry struct {
	Name string
	Path string
	Type string // "file" or "dir"
}

// IsDir reports whether the entry is a directory.
func (e RepoEntry) IsDir() bool {
	return e.Type == "dir"
}

// RunReport summarizes a finished automation session.
type RunReport struct {
	Succeeded       bool
	Attempts        int
	TargetPlatforms []string
	RunURL          string
}
