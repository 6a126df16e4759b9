package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/thomas-vilte/matebuild/internal/ai"
	"github.com/thomas-vilte/matebuild/internal/config"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/logger"
	"github.com/thomas-vilte/matebuild/internal/models"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

const (
	// publishGrace gives GitHub Actions time to register a push before the
	// loop starts looking for runs.
	publishGrace = 15 * time.Second

	pollInterval      = 10 * time.Second
	interAttemptDelay = 5 * time.Second

	// confidenceThreshold is the advisor confidence below which a fix is
	// flagged as doubtful.
	confidenceThreshold = 0.3

	// snippetAttemptThreshold is the attempt from which source snippets are
	// attached to the fix request.
	snippetAttemptThreshold = 3
	maxSnippetFiles         = 3
)

// errorLocationRegex matches compiler diagnostics like "src/main.cpp:10:5:".
var errorLocationRegex = regexp.MustCompile(`([a-zA-Z0-9_/]+\.\w+):\d+:\d+:`)

// fixLoop owns one monitor-and-remediate session. It keeps the live build
// file set so each accepted fix feeds into the next remediation prompt.
type fixLoop struct {
	repoClient ports.RepoClient
	advisor    ports.BuildAdvisor
	cfg        *config.Config
	trans      *i18n.Translations
	clock      Clock
	sources    models.SourceFileSet
}

func newFixLoop(
	repoClient ports.RepoClient,
	advisor ports.BuildAdvisor,
	cfg *config.Config,
	trans *i18n.Translations,
	clock Clock,
	sources models.SourceFileSet,
) *fixLoop {
	return &fixLoop{
		repoClient: repoClient,
		advisor:    advisor,
		cfg:        cfg,
		trans:      trans,
		clock:      clock,
		sources:    sources,
	}
}

// run watches CI and applies fixes until the build succeeds, the attempt
// budget runs out, or the loop decides no further attempt can help.
func (l *fixLoop) run(ctx context.Context, files models.BuildFileSet, progress models.ProgressFunc) (*models.RunReport, error) {
	log := logger.FromContext(ctx)
	files = files.Clone()

	maxAttempts := l.cfg.MaxFixAttempts
	report := &models.RunReport{}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		report.Attempts = attempt

		log.Info("starting build attempt", "attempt", attempt, "max_attempts", maxAttempts)
		progress.Emit(models.ProgressEvent{
			Type: models.ProgressStage,
			Message: l.trans.GetMessage("attempt_start", 0, map[string]interface{}{
				"Attempt": attempt,
				"Max":     maxAttempts,
			}),
		})

		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressLog,
			Message: l.trans.GetMessage("waiting_for_ci", 0, nil),
		})
		if err := l.clock.Sleep(ctx, publishGrace); err != nil {
			return nil, err
		}

		run, err := l.discoverRun(ctx, progress)
		if err != nil {
			return nil, err
		}
		report.RunURL = run.URL

		log.Info("monitoring workflow run", "run_id", run.ID, "attempt", attempt)
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressLog,
			Message: l.trans.GetMessage("monitoring_run", 0, map[string]interface{}{"RunID": run.ID}),
		})
		if run.URL != "" {
			progress.Emit(models.ProgressEvent{
				Type:    models.ProgressLog,
				Message: l.trans.GetMessage("run_view_url", 0, map[string]interface{}{"URL": run.URL}),
				Data:    map[string]interface{}{"run_url": run.URL},
			})
		}

		status, timedOut, err := l.pollRun(ctx, run.ID, progress)
		if err != nil {
			return nil, err
		}
		if status.URL != "" {
			report.RunURL = status.URL
		}

		switch {
		case status.Outcome == models.OutcomeSuccess:
			log.Info("build succeeded", "attempt", attempt, "run_id", run.ID)
			report.Succeeded = true
			return report, nil

		case timedOut || status.Outcome == models.OutcomeFailure || status.Outcome == models.OutcomeCancelled:
			if timedOut {
				progress.Emit(models.ProgressEvent{
					Type: models.ProgressWarning,
					Message: l.trans.GetMessage("build_timeout", 0, map[string]interface{}{
						"Seconds": l.cfg.CITimeoutSeconds,
					}),
				})
			}

			updated, doubtful, err := l.remediate(ctx, run.ID, attempt, files, progress)
			if err != nil {
				return nil, err
			}

			// When nothing changed, or the advisor itself doubts the fix,
			// another identical attempt cannot end differently.
			if (!updated || doubtful) && attempt >= maxAttempts-1 {
				return report, nil
			}

			progress.Emit(models.ProgressEvent{
				Type:    models.ProgressLog,
				Message: l.trans.GetMessage("waiting_next_attempt", 0, nil),
			})
			if err := l.clock.Sleep(ctx, interAttemptDelay); err != nil {
				return nil, err
			}

		default:
			log.Warn("unrecognized build conclusion", "conclusion", string(status.Outcome), "run_id", run.ID)
			progress.Emit(models.ProgressEvent{
				Type: models.ProgressWarning,
				Message: l.trans.GetMessage("unknown_status", 0, map[string]interface{}{
					"Status": string(status.Outcome),
				}),
			})
		}
	}

	return report, nil
}

// discoverRun waits for the newest workflow run to appear. Discovery retries
// do not consume attempts; the poll timeout is the only backstop.
func (l *fixLoop) discoverRun(ctx context.Context, progress models.ProgressFunc) (models.RunSummary, error) {
	deadline := l.clock.Now().Add(time.Duration(l.cfg.CITimeoutSeconds) * time.Second)

	for {
		runs, err := l.repoClient.ListWorkflowRuns(ctx)
		if err != nil {
			return models.RunSummary{}, fmt.Errorf("error discovering workflow runs: %w", err)
		}
		if len(runs) > 0 {
			return runs[0], nil
		}

		if l.clock.Now().After(deadline) {
			return models.RunSummary{}, fmt.Errorf("no workflow runs appeared within %ds", l.cfg.CITimeoutSeconds)
		}

		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressLog,
			Message: l.trans.GetMessage("no_runs_found", 0, nil),
		})
		if err := l.clock.Sleep(ctx, pollInterval); err != nil {
			return models.RunSummary{}, err
		}
	}
}

// pollRun watches a run until it completes or the configured timeout
// elapses. A timed-out run is handed to remediation like a failure.
func (l *fixLoop) pollRun(ctx context.Context, runID int64, progress models.ProgressFunc) (models.RunStatus, bool, error) {
	start := l.clock.Now()
	timeout := time.Duration(l.cfg.CITimeoutSeconds) * time.Second

	for {
		status, err := l.repoClient.GetRunStatus(ctx, runID)
		if err != nil {
			return models.RunStatus{}, false, fmt.Errorf("error polling run %d: %w", runID, err)
		}
		if status.Completed() {
			return status, false, nil
		}

		elapsed := l.clock.Now().Sub(start)
		if elapsed > timeout {
			return status, true, nil
		}

		progress.Emit(models.ProgressEvent{
			Type: models.ProgressLog,
			Message: l.trans.GetMessage("build_running", 0, map[string]interface{}{
				"Seconds": int(elapsed.Seconds()),
			}),
		})
		if err := l.clock.Sleep(ctx, pollInterval); err != nil {
			return models.RunStatus{}, false, err
		}
	}
}

// remediate fetches the failure logs, asks the advisor for fixes, and
// publishes whatever the advisor changed. It reports whether any file was
// updated and whether the advisor flagged its own fix as doubtful.
func (l *fixLoop) remediate(ctx context.Context, runID int64, attempt int, files models.BuildFileSet, progress models.ProgressFunc) (updated, doubtful bool, err error) {
	log := logger.FromContext(ctx)

	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressAdvisor,
		Message: l.trans.GetMessage("build_failed_analyzing", 0, nil),
	})

	errorLog, err := l.repoClient.GetRunLogs(ctx, runID)
	if err != nil || errorLog == "" {
		log.Warn("error logs unavailable", "run_id", runID, "error", err)
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressWarning,
			Message: l.trans.GetMessage("logs_unavailable", 0, map[string]interface{}{"RunID": runID}),
		})
		return false, false, nil
	}

	req := models.FixRequest{
		ErrorLog:     errorLog,
		CurrentFiles: files,
		Attempt:      attempt,
		MaxAttempts:  l.cfg.MaxFixAttempts,
	}
	if attempt >= snippetAttemptThreshold {
		req.SourceSnippets = l.snippetsForLog(errorLog)
	}

	fix, err := l.advisor.ProposeFix(ctx, req)
	if err != nil {
		return false, false, fmt.Errorf("error proposing fix for attempt %d: %w", attempt, err)
	}

	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressAdvisor,
		Message: l.trans.GetMessage("advisor_diagnosis", 0, map[string]interface{}{"Diagnosis": fix.Diagnosis}),
	})

	if fix.Confidence < confidenceThreshold {
		doubtful = true
		log.Warn("advisor reported low confidence", "confidence", fix.Confidence, "attempt", attempt)
		progress.Emit(models.ProgressEvent{
			Type: models.ProgressWarning,
			Message: l.trans.GetMessage("low_confidence", 0, map[string]interface{}{
				"Confidence": fmt.Sprintf("%.2f", fix.Confidence),
			}),
		})
		// Within one attempt of the budget the session is about to end
		// anyway, so a fix the advisor itself distrusts is not published.
		if attempt >= l.cfg.MaxFixAttempts-1 {
			return false, true, nil
		}
	}

	if fix.HasFileChanges() {
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressLog,
			Message: l.trans.GetMessage("applying_fixes", 0, map[string]interface{}{"Diagnosis": fix.Diagnosis}),
		})
	}

	changes := []struct {
		path    string
		content string
	}{
		{models.ManifestPath, fix.ManifestChanges},
		{models.BuildScriptPath, fix.BuildScriptChanges},
		{models.WorkflowPath, fix.WorkflowChanges},
	}
	for _, change := range changes {
		if change.content == "" {
			continue
		}
		if l.publishFix(ctx, change.path, change.content, attempt, progress) {
			files[change.path] = change.content
			updated = true
		}
	}

	if len(fix.CodeChanges) > 0 {
		if l.applyCodeEdits(ctx, attempt, fix.CodeChanges, progress) {
			updated = true
		}
	}

	if !updated {
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressWarning,
			Message: l.trans.GetMessage("no_fixes_applied", 0, nil),
		})
	}
	return updated, doubtful, nil
}

func (l *fixLoop) publishFix(ctx context.Context, path, content string, attempt int, progress models.ProgressFunc) bool {
	if !l.cfg.AutoCommit {
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressWarning,
			Message: l.trans.GetMessage("file_publish_skipped", 0, map[string]interface{}{"Path": path}),
		})
		return false
	}

	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressLog,
		Message: l.trans.GetMessage("updating_file", 0, map[string]interface{}{"Path": path}),
	})

	message := fmt.Sprintf("Fix attempt %d: update %s", attempt, path)
	if err := l.repoClient.CreateOrUpdateFile(ctx, path, content, message); err != nil {
		logger.FromContext(ctx).Error("failed to publish fix", "path", path, "error", err)
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressWarning,
			Message: l.trans.GetMessage("file_publish_failed", 0, map[string]interface{}{"Path": path}),
		})
		return false
	}
	return true
}

// applyCodeEdits handles the advisor's source edits. They are only applied
// on the final remediation tier; before that they are surfaced as
// suggestions so the user can intervene manually.
func (l *fixLoop) applyCodeEdits(ctx context.Context, attempt int, edits map[string]models.CodeEdit, progress models.ProgressFunc) bool {
	log := logger.FromContext(ctx)

	if attempt < l.cfg.MaxFixAttempts-1 {
		for file, edit := range edits {
			progress.Emit(models.ProgressEvent{
				Type: models.ProgressAdvisor,
				Message: l.trans.GetMessage("code_change_recorded", 0, map[string]interface{}{
					"File":        file,
					"Explanation": edit.Explanation,
				}),
			})
		}
		return false
	}

	applied := false
	for file, edit := range edits {
		content, err := l.repoClient.GetFile(ctx, file)
		if err != nil {
			log.Warn("cannot read file for code edit", "path", file, "error", err)
			continue
		}

		patched, ok := applyEdit(content, edit)
		if !ok {
			log.Warn("code edit did not match file content", "path", file, "action", string(edit.Action))
			continue
		}

		message := fmt.Sprintf("Fix attempt %d: update %s", attempt, file)
		if !l.cfg.AutoCommit {
			progress.Emit(models.ProgressEvent{
				Type:    models.ProgressWarning,
				Message: l.trans.GetMessage("file_publish_skipped", 0, map[string]interface{}{"Path": file}),
			})
			continue
		}
		if err := l.repoClient.CreateOrUpdateFile(ctx, file, patched, message); err != nil {
			log.Error("failed to publish code edit", "path", file, "error", err)
			continue
		}

		applied = true
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressAdvisor,
			Message: l.trans.GetMessage("code_change_applied", 0, map[string]interface{}{"File": file}),
		})
	}
	return applied
}

// applyEdit performs one find/replace style source edit. It reports false
// when the target text is not present, so a stale proposal never corrupts
// the file.
func applyEdit(content string, edit models.CodeEdit) (string, bool) {
	switch edit.Action {
	case models.EditReplace:
		if edit.Find == "" || !strings.Contains(content, edit.Find) {
			return "", false
		}
		return strings.Replace(content, edit.Find, edit.Replace, 1), true
	case models.EditRemove:
		if edit.Find == "" || !strings.Contains(content, edit.Find) {
			return "", false
		}
		return strings.Replace(content, edit.Find, "", 1), true
	case models.EditAdd:
		if edit.Replace == "" {
			return "", false
		}
		return content + "\n" + edit.Replace, true
	default:
		return "", false
	}
}

// snippetsForLog extracts the source files named in compiler diagnostics and
// returns truncated snippets for the ones we fetched at session start.
func (l *fixLoop) snippetsForLog(errorLog string) map[string]string {
	matches := errorLocationRegex.FindAllStringSubmatch(errorLog, -1)
	if len(matches) == 0 {
		return nil
	}

	snippets := make(map[string]string)
	for _, m := range matches {
		if len(snippets) >= maxSnippetFiles {
			break
		}
		path := m[1]
		content, ok := l.sources[path]
		if !ok {
			continue
		}
		if _, seen := snippets[path]; seen {
			continue
		}
		snippets[path] = ai.Truncate(content, ai.MaxSnippetChars)
	}

	if len(snippets) == 0 {
		return nil
	}
	return snippets
}
