package ai

import (
	"context"

	"github.com/thomas-vilte/matebuild/internal/logger"
	"github.com/thomas-vilte/matebuild/internal/models"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

var _ ports.BuildAdvisor = (*ResilientAdvisor)(nil)

// ResilientAdvisor decorates a primary advisor with a fallback. Every call
// goes to the primary first; when it fails for any reason, the fallback
// answers instead, so a flaky model endpoint never kills a run.
type ResilientAdvisor struct {
	primary  ports.BuildAdvisor
	fallback ports.BuildAdvisor
}

func NewResilientAdvisor(primary, fallback ports.BuildAdvisor) *ResilientAdvisor {
	return &ResilientAdvisor{
		primary:  primary,
		fallback: fallback,
	}
}

func (r *ResilientAdvisor) AnalyzeRequirements(ctx context.Context, files models.SourceFileSet) (*models.RequirementAnalysis, error) {
	analysis, err := r.primary.AnalyzeRequirements(ctx, files)
	if err == nil {
		return analysis, nil
	}

	logger.FromContext(ctx).Warn("primary advisor failed, using fallback analysis",
		"error", err)
	return r.fallback.AnalyzeRequirements(ctx, files)
}

func (r *ResilientAdvisor) GenerateBuildFiles(ctx context.Context, projectName string, analysis *models.RequirementAnalysis, targetPlatforms []string) (models.BuildFileSet, error) {
	files, err := r.primary.GenerateBuildFiles(ctx, projectName, analysis, targetPlatforms)
	if err == nil {
		return files, nil
	}

	logger.FromContext(ctx).Warn("primary advisor failed, using template build files",
		"error", err)
	return r.fallback.GenerateBuildFiles(ctx, projectName, analysis, targetPlatforms)
}

func (r *ResilientAdvisor) ProposeFix(ctx context.Context, req models.FixRequest) (*models.FixResult, error) {
	result, err := r.primary.ProposeFix(ctx, req)
	if err == nil {
		return result, nil
	}

	logger.FromContext(ctx).Warn("primary advisor failed, using fallback diagnosis",
		"error", err, "attempt", req.Attempt)
	return r.fallback.ProposeFix(ctx, req)
}
