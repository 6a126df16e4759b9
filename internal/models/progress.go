package models

type ProgressEventType string

const (
	// ProgressStage marks a transition between orchestration steps.
	ProgressStage ProgressEventType = "stage"
	// ProgressLog is a plain build-log line.
	ProgressLog ProgressEventType = "log"
	// ProgressAdvisor carries the advisor's own commentary (analysis,
	// diagnosis), surfaced separately from the build log.
	ProgressAdvisor ProgressEventType = "advisor"
	// ProgressWarning flags recoverable conditions.
	ProgressWarning ProgressEventType = "warning"
	// ProgressBuildSucceeded and ProgressBuildExhausted are terminal.
	ProgressBuildSucceeded ProgressEventType = "build_succeeded"
	ProgressBuildExhausted ProgressEventType = "build_exhausted"
)

// ProgressEvent is what the worker goroutine emits for the presentation
// layer. The presentation side drains events on its own schedule; no state
// is shared across the goroutine boundary besides the channel.
type ProgressEvent struct {
	Type    ProgressEventType
	Message string
	Data    map[string]interface{}
}

// ProgressFunc receives progress events. A nil ProgressFunc is always legal.
type ProgressFunc func(ProgressEvent)

// Emit calls f if it is non-nil.
func (f ProgressFunc) Emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
