package ai

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matebuild/internal/models"
)

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
