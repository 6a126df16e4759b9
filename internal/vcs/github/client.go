// Package github implements the RepoClient interface on top of the GitHub
// REST API.
package github

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/go-github/v80/github"
	"github.com/thomas-vilte/matebuild/internal/ports"
	"golang.org/x/oauth2"
)

var _ ports.RepoClient = (*Client)(nil)

// RepositoriesService is the slice of the GitHub repositories API this
// client needs.
type RepositoriesService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
}

// ActionsService is the slice of the GitHub Actions API this client needs.
type ActionsService interface {
	ListRepositoryWorkflowRuns(ctx context.Context, owner, repo string, opts *github.ListWorkflowRunsOptions) (*github.WorkflowRuns, *github.Response, error)
	GetWorkflowRunByID(ctx context.Context, owner, repo string, runID int64) (*github.WorkflowRun, *github.Response, error)
	GetWorkflowRunLogs(ctx context.Context, owner, repo string, runID int64, maxRedirects int) (*url.URL, *github.Response, error)
}

// httpDoer downloads the log archive from the pre-signed URL the API hands
// back.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	repoService    RepositoriesService
	actionsService ActionsService
	httpClient     httpDoer
	owner          string
	repo           string
}

func NewClient(owner, repo, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &Client{
		repoService:    client.Repositories,
		actionsService: client.Actions,
		httpClient:     http.DefaultClient,
		owner:          owner,
		repo:           repo,
	}
}

// NewClientWithServices wires explicit service implementations, used by tests.
func NewClientWithServices(
	repoService RepositoriesService,
	actionsService ActionsService,
	httpClient httpDoer,
	owner string,
	repo string,
) *Client {
	return &Client{
		repoService:    repoService,
		actionsService: actionsService,
		httpClient:     httpClient,
		owner:          owner,
		repo:           repo,
	}
}
