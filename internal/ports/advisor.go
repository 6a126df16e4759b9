package ports

import (
	"context"

	"github.com/thomas-vilte/matebuild/internal/models"
)

// BuildAdvisor turns free-form project context into structured build
// decisions. Implementations are expected to be either model-backed or
// deterministic; callers must not assume which one answered.
type BuildAdvisor interface {
	// AnalyzeRequirements inspects the project sources and infers the
	// dependencies, language standard and file list needed to build them.
	AnalyzeRequirements(ctx context.Context, files models.SourceFileSet) (*models.RequirementAnalysis, error)

	// GenerateBuildFiles produces the dependency manifest, build script and
	// CI workflow for the given analysis and target platforms.
	GenerateBuildFiles(ctx context.Context, projectName string, analysis *models.RequirementAnalysis, targetPlatforms []string) (models.BuildFileSet, error)

	// ProposeFix diagnoses a failed CI run and proposes replacement build
	// files and, on late attempts, source edits.
	ProposeFix(ctx context.Context, req models.FixRequest) (*models.FixResult, error)
}
