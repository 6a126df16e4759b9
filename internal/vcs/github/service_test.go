package github

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
	"github.com/thomas-vilte/matebuild/internal/models"
)

func setupClientTest() (*MockRepositoriesService, *MockActionsService, *MockHTTPClient, *Client) {
	mockRepos := new(MockRepositoriesService)
	mockActions := new(MockActionsService)
	mockHTTP := new(MockHTTPClient)
	client := NewClientWithServices(mockRepos, mockActions, mockHTTP, "owner", "repo")
	return mockRepos, mockActions, mockHTTP, client
}

func notFoundResponse() *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}
}

func okResponse() *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: http.StatusOK}}
}

func TestGetFile(t *testing.T) {
	t.Run("returns decoded content", func(t *testing.T) {
		mockRepos, _, _, client := setupClientTest()

		file := &github.RepositoryContent{
			Content:  github.Ptr("aW50IG1haW4oKSB7fQ=="),
			Encoding: github.Ptr("base64"),
		}
		mockRepos.On("GetContents", mock.Anything, "owner", "repo", "main.cpp", mock.Anything).
			Return(file, nil, okResponse(), nil)

		content, err := client.GetFile(context.Background(), "main.cpp")

		require.NoError(t, err)
		assert.Equal(t, "int main() {}", content)
	})

	t.Run("maps 404 to the domain error", func(t *testing.T) {
		mockRepos, _, _, client := setupClientTest()

		mockRepos.On("GetContents", mock.Anything, "owner", "repo", "missing.cpp", mock.Anything).
			Return(nil, nil, notFoundResponse(), assert.AnError)

		_, err := client.GetFile(context.Background(), "missing.cpp")

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrFileNotFound.Message, appErr.Message)
	})
}

func TestCreateOrUpdateFile(t *testing.T) {
	t.Run("creates when the file does not exist", func(t *testing.T) {
		mockRepos, _, _, client := setupClientTest()

		mockRepos.On("GetContents", mock.Anything, "owner", "repo", "vcpkg.json", mock.Anything).
			Return(nil, nil, notFoundResponse(), assert.AnError)
		mockRepos.On("CreateFile", mock.Anything, "owner", "repo", "vcpkg.json", mock.MatchedBy(func(opts *github.RepositoryContentFileOptions) bool {
			return opts.GetMessage() == "Add vcpkg.json" && string(opts.Content) == "{}" && opts.SHA == nil
		})).Return(&github.RepositoryContentResponse{}, okResponse(), nil)

		err := client.CreateOrUpdateFile(context.Background(), "vcpkg.json", "{}", "Add vcpkg.json")

		require.NoError(t, err)
		mockRepos.AssertExpectations(t)
		mockRepos.AssertNotCalled(t, "UpdateFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("updates with the existing blob SHA", func(t *testing.T) {
		mockRepos, _, _, client := setupClientTest()

		existing := &github.RepositoryContent{SHA: github.Ptr("abc123")}
		mockRepos.On("GetContents", mock.Anything, "owner", "repo", "vcpkg.json", mock.Anything).
			Return(existing, nil, okResponse(), nil)
		mockRepos.On("UpdateFile", mock.Anything, "owner", "repo", "vcpkg.json", mock.MatchedBy(func(opts *github.RepositoryContentFileOptions) bool {
			return opts.GetSHA() == "abc123"
		})).Return(&github.RepositoryContentResponse{}, okResponse(), nil)

		err := client.CreateOrUpdateFile(context.Background(), "vcpkg.json", "{}", "Fix attempt 1: update vcpkg.json")

		require.NoError(t, err)
		mockRepos.AssertExpectations(t)
	})

	t.Run("wraps publish failures in the domain error", func(t *testing.T) {
		mockRepos, _, _, client := setupClientTest()

		mockRepos.On("GetContents", mock.Anything, "owner", "repo", "vcpkg.json", mock.Anything).
			Return(nil, nil, notFoundResponse(), assert.AnError)
		mockRepos.On("CreateFile", mock.Anything, "owner", "repo", "vcpkg.json", mock.Anything).
			Return(nil, nil, assert.AnError)

		err := client.CreateOrUpdateFile(context.Background(), "vcpkg.json", "{}", "Add vcpkg.json")

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrPublishFile.Message, appErr.Message)
	})
}

func TestListDirectory(t *testing.T) {
	t.Run("maps directory entries", func(t *testing.T) {
		mockRepos, _, _, client := setupClientTest()

		dir := []*github.RepositoryContent{
			{Name: github.Ptr("src"), Path: github.Ptr("src"), Type: github.Ptr("dir")},
			{Name: github.Ptr("main.cpp"), Path: github.Ptr("main.cpp"), Type: github.Ptr("file")},
		}
		mockRepos.On("GetContents", mock.Anything, "owner", "repo", "", mock.Anything).
			Return(nil, dir, okResponse(), nil)

		entries, err := client.ListDirectory(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].IsDir())
		assert.Equal(t, models.RepoEntry{Name: "main.cpp", Path: "main.cpp", Type: "file"}, entries[1])
	})

	t.Run("rejects a file path", func(t *testing.T) {
		mockRepos, _, _, client := setupClientTest()

		file := &github.RepositoryContent{Name: github.Ptr("main.cpp")}
		mockRepos.On("GetContents", mock.Anything, "owner", "repo", "main.cpp", mock.Anything).
			Return(file, nil, okResponse(), nil)

		_, err := client.ListDirectory(context.Background(), "main.cpp")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a file")
	})
}

func TestListWorkflowRuns(t *testing.T) {
	t.Run("returns run summaries newest first", func(t *testing.T) {
		_, mockActions, _, client := setupClientTest()

		runs := &github.WorkflowRuns{
			WorkflowRuns: []*github.WorkflowRun{
				{ID: github.Ptr(int64(200)), HTMLURL: github.Ptr("https://github.com/owner/repo/actions/runs/200")},
				{ID: github.Ptr(int64(100)), HTMLURL: github.Ptr("https://github.com/owner/repo/actions/runs/100")},
			},
		}
		mockActions.On("ListRepositoryWorkflowRuns", mock.Anything, "owner", "repo", mock.MatchedBy(func(opts *github.ListWorkflowRunsOptions) bool {
			return opts.PerPage == runsPerPage
		})).Return(runs, okResponse(), nil)

		summaries, err := client.ListWorkflowRuns(context.Background())

		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, int64(200), summaries[0].ID)
	})
}

func TestGetRunStatus(t *testing.T) {
	cases := []struct {
		name       string
		status     string
		conclusion string
		lifecycle  models.RunLifecycle
		outcome    models.RunOutcome
	}{
		{"running build has no conclusion", "in_progress", "", models.RunInProgress, models.OutcomeUnknown},
		{"green build", "completed", "success", models.RunCompleted, models.OutcomeSuccess},
		{"red build", "completed", "failure", models.RunCompleted, models.OutcomeFailure},
		{"cancelled build", "completed", "cancelled", models.RunCompleted, models.OutcomeCancelled},
		{"unrecognized conclusion", "completed", "neutral", models.RunCompleted, models.OutcomeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, mockActions, _, client := setupClientTest()

			run := &github.WorkflowRun{
				Status:     github.Ptr(tc.status),
				Conclusion: github.Ptr(tc.conclusion),
				HTMLURL:    github.Ptr("https://github.com/owner/repo/actions/runs/42"),
			}
			mockActions.On("GetWorkflowRunByID", mock.Anything, "owner", "repo", int64(42)).
				Return(run, okResponse(), nil)

			status, err := client.GetRunStatus(context.Background(), 42)

			require.NoError(t, err)
			assert.Equal(t, tc.lifecycle, status.Lifecycle)
			assert.Equal(t, tc.outcome, status.Outcome)
			assert.NotEmpty(t, status.URL)
		})
	}
}

func buildLogArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestGetRunLogs(t *testing.T) {
	t.Run("downloads and extracts the archive", func(t *testing.T) {
		_, mockActions, mockHTTP, client := setupClientTest()

		logURL, _ := url.Parse("https://logs.example.com/archive.zip")
		mockActions.On("GetWorkflowRunLogs", mock.Anything, "owner", "repo", int64(42), logMaxRedirects).
			Return(logURL, okResponse(), nil)

		archive := buildLogArchive(t, map[string]string{
			"build/2_Configure.txt": "configure output",
			"build/1_Checkout.txt":  "checkout output",
			"build/metadata.json":   "ignored",
		})
		mockHTTP.On("Do", mock.MatchedBy(func(req *http.Request) bool {
			return req.URL.String() == logURL.String()
		})).Return(&http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader(archive)),
		}, nil)

		logs, err := client.GetRunLogs(context.Background(), 42)

		require.NoError(t, err)
		checkout := strings.Index(logs, "checkout output")
		configure := strings.Index(logs, "configure output")
		assert.Greater(t, configure, checkout)
		assert.Contains(t, logs, "=== build/1_Checkout.txt ===")
		assert.NotContains(t, logs, "ignored")
	})

	t.Run("fails on a non-200 download", func(t *testing.T) {
		_, mockActions, mockHTTP, client := setupClientTest()

		logURL, _ := url.Parse("https://logs.example.com/archive.zip")
		mockActions.On("GetWorkflowRunLogs", mock.Anything, "owner", "repo", int64(42), logMaxRedirects).
			Return(logURL, okResponse(), nil)
		mockHTTP.On("Do", mock.Anything).Return(&http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader("expired")),
		}, nil)

		_, err := client.GetRunLogs(context.Background(), 42)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "answered 403")
	})

	t.Run("fails on a corrupt archive", func(t *testing.T) {
		_, mockActions, mockHTTP, client := setupClientTest()

		logURL, _ := url.Parse("https://logs.example.com/archive.zip")
		mockActions.On("GetWorkflowRunLogs", mock.Anything, "owner", "repo", int64(42), logMaxRedirects).
			Return(logURL, okResponse(), nil)
		mockHTTP.On("Do", mock.Anything).Return(&http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("not a zip")),
		}, nil)

		_, err := client.GetRunLogs(context.Background(), 42)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error opening log archive")
	})
}
