package github

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
	"github.com/thomas-vilte/matebuild/internal/logger"
	"github.com/thomas-vilte/matebuild/internal/models"
)

const (
	logMaxRedirects = 3
	runsPerPage     = 5
)

// GetFile returns the decoded content of a file in the repository.
func (c *Client) GetFile(ctx context.Context, path string) (string, error) {
	fileContent, _, resp, err := c.repoService.GetContents(ctx, c.owner, c.repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", domainErrors.ErrFileNotFound.WithContext("path", path)
		}
		return "", fmt.Errorf("error getting file %s: %w", path, err)
	}

	if fileContent == nil {
		return "", domainErrors.ErrFileNotFound.WithContext("path", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("error decoding file %s: %w", path, err)
	}
	return content, nil
}

// CreateOrUpdateFile writes content at path. When the file already exists
// its blob SHA is passed back so the API performs an update instead of a
// create.
func (c *Client) CreateOrUpdateFile(ctx context.Context, path, content, message string) error {
	log := logger.FromContext(ctx)

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: []byte(content),
	}

	existing, _, resp, err := c.repoService.GetContents(ctx, c.owner, c.repo, path, nil)
	switch {
	case err == nil && existing != nil:
		opts.SHA = existing.SHA
		_, _, err = c.repoService.UpdateFile(ctx, c.owner, c.repo, path, opts)
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		_, _, err = c.repoService.CreateFile(ctx, c.owner, c.repo, path, opts)
	default:
		return domainErrors.ErrPublishFile.WithError(err).WithContext("path", path)
	}

	if err != nil {
		log.Error("failed to publish file",
			"error", err,
			"path", path,
			"repo", fmt.Sprintf("%s/%s", c.owner, c.repo))
		return domainErrors.ErrPublishFile.WithError(err).WithContext("path", path)
	}

	log.Debug("file published",
		"path", path,
		"content_size", len(content))
	return nil
}

// ListDirectory lists the entries directly under path, "" for the root.
func (c *Client) ListDirectory(ctx context.Context, path string) ([]models.RepoEntry, error) {
	fileContent, dirContent, resp, err := c.repoService.GetContents(ctx, c.owner, c.repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, domainErrors.ErrFileNotFound.WithContext("path", path)
		}
		return nil, fmt.Errorf("error listing directory %s: %w", path, err)
	}

	// A file path answers with fileContent set; callers expect directories.
	if fileContent != nil {
		return nil, fmt.Errorf("path %s is a file, not a directory", path)
	}

	entries := make([]models.RepoEntry, 0, len(dirContent))
	for _, item := range dirContent {
		entries = append(entries, models.RepoEntry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Type: item.GetType(),
		})
	}
	return entries, nil
}

// ListWorkflowRuns returns the most recent CI runs, newest first.
func (c *Client) ListWorkflowRuns(ctx context.Context) ([]models.RunSummary, error) {
	runs, _, err := c.actionsService.ListRepositoryWorkflowRuns(ctx, c.owner, c.repo, &github.ListWorkflowRunsOptions{
		ListOptions: github.ListOptions{PerPage: runsPerPage},
	})
	if err != nil {
		return nil, fmt.Errorf("error listing workflow runs: %w", err)
	}

	summaries := make([]models.RunSummary, 0, len(runs.WorkflowRuns))
	for _, run := range runs.WorkflowRuns {
		summaries = append(summaries, models.RunSummary{
			ID:  run.GetID(),
			URL: run.GetHTMLURL(),
		})
	}
	return summaries, nil
}

// GetRunStatus fetches the current lifecycle and outcome of a run.
func (c *Client) GetRunStatus(ctx context.Context, runID int64) (models.RunStatus, error) {
	run, _, err := c.actionsService.GetWorkflowRunByID(ctx, c.owner, c.repo, runID)
	if err != nil {
		return models.RunStatus{}, fmt.Errorf("error getting workflow run %d: %w", runID, err)
	}

	return models.RunStatus{
		Lifecycle: parseLifecycle(run.GetStatus()),
		Outcome:   parseOutcome(run.GetConclusion()),
		URL:       run.GetHTMLURL(),
	}, nil
}

// GetRunLogs downloads the log archive of a run and returns its combined
// text. The API answers with a pre-signed URL to a zip of per-step logs.
func (c *Client) GetRunLogs(ctx context.Context, runID int64) (string, error) {
	logURL, _, err := c.actionsService.GetWorkflowRunLogs(ctx, c.owner, c.repo, runID, logMaxRedirects)
	if err != nil {
		return "", fmt.Errorf("error getting log URL for run %d: %w", runID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("error building log request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error downloading logs for run %d: %w", runID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("log download for run %d answered %d", runID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading log archive: %w", err)
	}

	return extractLogArchive(data)
}

// extractLogArchive concatenates the text entries of a log zip in name
// order, so job steps come out in execution order.
func extractLogArchive(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error opening log archive: %w", err)
	}

	files := make([]*zip.File, 0, len(reader.File))
	for _, f := range reader.File {
		if strings.HasSuffix(f.Name, ".txt") {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	var b strings.Builder
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("error opening log entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("error reading log entry %s: %w", f.Name, err)
		}
		b.WriteString(fmt.Sprintf("=== %s ===\n", f.Name))
		b.Write(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func parseLifecycle(status string) models.RunLifecycle {
	switch status {
	case "queued":
		return models.RunQueued
	case "in_progress":
		return models.RunInProgress
	case "completed":
		return models.RunCompleted
	default:
		return models.RunLifecycle(status)
	}
}

func parseOutcome(conclusion string) models.RunOutcome {
	switch conclusion {
	case "success":
		return models.OutcomeSuccess
	case "failure":
		return models.OutcomeFailure
	case "cancelled":
		return models.OutcomeCancelled
	default:
		return models.OutcomeUnknown
	}
}
