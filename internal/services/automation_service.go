// Package services contains the orchestration logic that drives a build
// automation session from source discovery to CI success or exhaustion.
package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/thomas-vilte/matebuild/internal/config"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/logger"
	"github.com/thomas-vilte/matebuild/internal/models"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

// maxWalkDepth bounds the repository tree walk so a pathological layout
// cannot stall discovery.
const maxWalkDepth = 16

var sourceExtensions = map[string]struct{}{
	".cpp": {},
	".cc":  {},
	".c":   {},
	".h":   {},
	".hpp": {},
}

type AutomationService struct {
	repoClient ports.RepoClient
	advisor    ports.BuildAdvisor
	cfg        *config.Config
	trans      *i18n.Translations
	clock      Clock
}

type AutomationOption func(*AutomationService)

// WithClock replaces the wall clock, used by tests.
func WithClock(clock Clock) AutomationOption {
	return func(s *AutomationService) {
		s.clock = clock
	}
}

func NewAutomationService(
	repoClient ports.RepoClient,
	advisor ports.BuildAdvisor,
	cfg *config.Config,
	trans *i18n.Translations,
	opts ...AutomationOption,
) *AutomationService {
	service := &AutomationService{
		repoClient: repoClient,
		advisor:    advisor,
		cfg:        cfg,
		trans:      trans,
		clock:      NewClock(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Run drives one full automation session: fetch sources, analyze them,
// generate and publish the build files, then watch CI and apply fixes until
// the build passes or the attempt budget runs out.
func (s *AutomationService) Run(ctx context.Context, projectName string, progress models.ProgressFunc) (*models.RunReport, error) {
	log := logger.FromContext(ctx)

	if projectName == "" {
		return nil, domainErrors.ErrProjectNameRequired
	}

	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressStage,
		Message: s.trans.GetMessage("stage_fetching", 0, nil),
	})

	sources := make(models.SourceFileSet)
	if err := s.collectSources(ctx, "", 0, sources); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, domainErrors.ErrNoSourcesFound
	}

	log.Info("repository sources collected", "count", len(sources))
	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressLog,
		Message: s.trans.GetMessage("stage_files_found", len(sources), map[string]interface{}{"Count": len(sources)}),
	})

	analysis, err := s.analyze(ctx, sources, progress)
	if err != nil {
		return nil, err
	}

	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressStage,
		Message: s.trans.GetMessage("stage_generating", 0, nil),
	})

	files, err := s.advisor.GenerateBuildFiles(ctx, projectName, analysis, s.cfg.TargetPlatforms)
	if err != nil {
		return nil, fmt.Errorf("error generating build files: %w", err)
	}

	published, err := s.publishBuildFiles(ctx, files, progress)
	if err != nil {
		return nil, err
	}
	if !published {
		// Nothing reached the remote, so there is no CI run to watch.
		return &models.RunReport{
			Succeeded:       false,
			Attempts:        0,
			TargetPlatforms: s.cfg.TargetPlatforms,
		}, nil
	}

	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressStage,
		Message: s.trans.GetMessage("stage_monitoring", 0, nil),
	})

	loop := newFixLoop(s.repoClient, s.advisor, s.cfg, s.trans, s.clock, sources)
	report, err := loop.run(ctx, files, progress)
	if err != nil {
		return nil, err
	}
	report.TargetPlatforms = s.cfg.TargetPlatforms

	s.emitOutcome(report, progress)
	return report, nil
}

func (s *AutomationService) analyze(ctx context.Context, sources models.SourceFileSet, progress models.ProgressFunc) (*models.RequirementAnalysis, error) {
	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressStage,
		Message: s.trans.GetMessage("stage_analyzing", 0, nil),
	})

	analysis, err := s.advisor.AnalyzeRequirements(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("error analyzing requirements: %w", err)
	}

	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressAdvisor,
		Message: s.trans.GetMessage("advisor_dependencies", 0, map[string]interface{}{
			"Deps": strings.Join(analysis.Dependencies, ", "),
		}),
	})
	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressAdvisor,
		Message: s.trans.GetMessage("advisor_standard", 0, map[string]interface{}{
			"Std": analysis.CppStandard,
		}),
	})
	if analysis.SpecialRequirements != "" {
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressAdvisor,
			Message: s.trans.GetMessage("advisor_special", 0, map[string]interface{}{
				"Notes": analysis.SpecialRequirements,
			}),
		})
	}

	return analysis, nil
}

// publishBuildFiles pushes the generated files in a fixed order. It reports
// whether at least one file reached the remote; with auto_commit off nothing
// is pushed and the session ends after generation.
func (s *AutomationService) publishBuildFiles(ctx context.Context, files models.BuildFileSet, progress models.ProgressFunc) (bool, error) {
	progress.Emit(models.ProgressEvent{
		Type:    models.ProgressStage,
		Message: s.trans.GetMessage("stage_publishing", 0, nil),
	})

	published := false
	for _, filePath := range models.BuildFilePaths() {
		content, ok := files[filePath]
		if !ok {
			continue
		}

		if !s.cfg.AutoCommit {
			progress.Emit(models.ProgressEvent{
				Type:    models.ProgressWarning,
				Message: s.trans.GetMessage("file_publish_skipped", 0, map[string]interface{}{"Path": filePath}),
			})
			continue
		}

		message := fmt.Sprintf("Add %s", filePath)
		if err := s.repoClient.CreateOrUpdateFile(ctx, filePath, content, message); err != nil {
			progress.Emit(models.ProgressEvent{
				Type:    models.ProgressWarning,
				Message: s.trans.GetMessage("file_publish_failed", 0, map[string]interface{}{"Path": filePath}),
			})
			return published, err
		}

		published = true
		progress.Emit(models.ProgressEvent{
			Type:    models.ProgressLog,
			Message: s.trans.GetMessage("file_published", 0, map[string]interface{}{"Path": filePath}),
		})
	}
	return published, nil
}

func (s *AutomationService) collectSources(ctx context.Context, dir string, depth int, out models.SourceFileSet) error {
	if depth > maxWalkDepth {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.repoClient.ListDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("error listing repository path %q: %w", dir, err)
	}

	log := logger.FromContext(ctx)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.IsDir() {
			if strings.HasPrefix(entry.Name, ".") {
				continue
			}
			if err := s.collectSources(ctx, entry.Path, depth+1, out); err != nil {
				return err
			}
			continue
		}

		ext := strings.ToLower(path.Ext(entry.Name))
		if _, ok := sourceExtensions[ext]; !ok {
			continue
		}

		content, err := s.repoClient.GetFile(ctx, entry.Path)
		if err != nil {
			log.Warn("skipping unreadable source file",
				"path", entry.Path,
				"error", err)
			continue
		}
		out[entry.Path] = content
	}
	return nil
}

func (s *AutomationService) emitOutcome(report *models.RunReport, progress models.ProgressFunc) {
	if report.Succeeded {
		progress.Emit(models.ProgressEvent{
			Type: models.ProgressBuildSucceeded,
			Message: s.trans.GetMessage("run_success", 0, map[string]interface{}{
				"Attempts":  report.Attempts,
				"Platforms": strings.Join(report.TargetPlatforms, ", "),
			}),
			Data: map[string]interface{}{"run_url": report.RunURL},
		})
		return
	}

	progress.Emit(models.ProgressEvent{
		Type: models.ProgressBuildExhausted,
		Message: s.trans.GetMessage("run_exhausted", 0, map[string]interface{}{
			"Attempts": report.Attempts,
			"Max":      s.cfg.MaxFixAttempts,
		}),
		Data: map[string]interface{}{"run_url": report.RunURL},
	})
}
