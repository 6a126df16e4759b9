package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matebuild/internal/models"
)

type MockRepoClient struct {
	mock.Mock
}

func (m *MockRepoClient) GetFile(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockRepoClient) CreateOrUpdateFile(ctx context.Context, path, content, message string) error {
	args := m.Called(ctx, path, content, message)
	return args.Error(0)
}

func (m *MockRepoClient) ListDirectory(ctx context.Context, path string) ([]models.RepoEntry, error) {
	args := m.Called(ctx, path)
	var entries []models.RepoEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]models.RepoEntry)
	}
	return entries, args.Error(1)
}

func (m *MockRepoClient) ListWorkflowRuns(ctx context.Context) ([]models.RunSummary, error) {
	args := m.Called(ctx)
	var runs []models.RunSummary
	if args.Get(0) != nil {
		runs = args.Get(0).([]models.RunSummary)
	}
	return runs, args.Error(1)
}

func (m *MockRepoClient) GetRunStatus(ctx context.Context, runID int64) (models.RunStatus, error) {
	args := m.Called(ctx, runID)
	return args.Get(0).(models.RunStatus), args.Error(1)
}

func (m *MockRepoClient) GetRunLogs(ctx context.Context, runID int64) (string, error) {
	args := m.Called(ctx, runID)
	return args.String(0), args.Error(1)
}

type MockBuildAdvisor struct {
	mock.Mock
}

func (m *MockBuildAdvisor) AnalyzeRequirements(ctx context.Context, files models.SourceFileSet) (*models.RequirementAnalysis, error) {
	args := m.Called(ctx, files)
	var analysis *models.RequirementAnalysis
	if args.Get(0) != nil {
		analysis = args.Get(0).(*models.RequirementAnalysis)
	}
	return analysis, args.Error(1)
}

func (m *MockBuildAdvisor) GenerateBuildFiles(ctx context.Context, projectName string, analysis *models.RequirementAnalysis, targetPlatforms []string) (models.BuildFileSet, error) {
	args := m.Called(ctx, projectName, analysis, targetPlatforms)
	var files models.BuildFileSet
	if args.Get(0) != nil {
		files = args.Get(0).(models.BuildFileSet)
	}
	return files, args.Error(1)
}

func (m *MockBuildAdvisor) ProposeFix(ctx context.Context, req models.FixRequest) (*models.FixResult, error) {
	args := m.Called(ctx, req)
	var result *models.FixResult
	if args.Get(0) != nil {
		result = args.Get(0).(*models.FixResult)
	}
	return result, args.Error(1)
}
