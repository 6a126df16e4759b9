// Package gemini implements the BuildAdvisor interface on top of the Gemini
// API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/thomas-vilte/matebuild/internal/ai"
	"github.com/thomas-vilte/matebuild/internal/config"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
	"github.com/thomas-vilte/matebuild/internal/i18n"
	"github.com/thomas-vilte/matebuild/internal/logger"
	"github.com/thomas-vilte/matebuild/internal/models"
	"github.com/thomas-vilte/matebuild/internal/ports"
	"google.golang.org/api/option"
)

var _ ports.BuildAdvisor = (*Advisor)(nil)

type Advisor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	trans  *i18n.Translations
}

func NewAdvisor(ctx context.Context, apiKey string, cfg *config.Config, trans *i18n.Translations) (*Advisor, error) {
	if apiKey == "" {
		return nil, domainErrors.ErrGeminiKeyMissing
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating Gemini client", err)
	}

	modelName := cfg.AIConfig.Model
	if modelName == "" {
		modelName = config.DefaultModelForAI(config.AIGemini)
	}
	model := client.GenerativeModel(string(modelName))
	model.ResponseMIMEType = "application/json"

	return &Advisor{
		client: client,
		model:  model,
		trans:  trans,
	}, nil
}

// Close releases the underlying API client.
func (a *Advisor) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

func (a *Advisor) AnalyzeRequirements(ctx context.Context, files models.SourceFileSet) (*models.RequirementAnalysis, error) {
	log := logger.FromContext(ctx)
	log.Info("analyzing project requirements via gemini", "files_count", len(files))

	text, err := a.generate(ctx, ai.AnalysisPrompt(files))
	if err != nil {
		return nil, err
	}

	analysis, err := parseAnalysis(text)
	if err != nil {
		log.Error("failed to parse analysis response", "error", err)
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error parsing analysis response", err)
	}

	log.Info("requirements analyzed",
		"dependencies", len(analysis.Dependencies),
		"cpp_standard", analysis.CppStandard,
		"source_files", len(analysis.SourceFiles))
	return analysis, nil
}

func (a *Advisor) GenerateBuildFiles(ctx context.Context, projectName string, analysis *models.RequirementAnalysis, targetPlatforms []string) (models.BuildFileSet, error) {
	log := logger.FromContext(ctx)
	log.Info("generating build files via gemini",
		"project", projectName,
		"platforms", strings.Join(targetPlatforms, ","))

	text, err := a.generate(ctx, ai.GenerationPrompt(projectName, analysis, targetPlatforms))
	if err != nil {
		return nil, err
	}

	files, err := parseGeneratedFiles(text)
	if err != nil {
		log.Error("failed to parse generated build files", "error", err)
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error parsing generated build files", err)
	}
	return files, nil
}

func (a *Advisor) ProposeFix(ctx context.Context, req models.FixRequest) (*models.FixResult, error) {
	log := logger.FromContext(ctx)
	log.Info("requesting fix proposal via gemini",
		"attempt", req.Attempt,
		"max_attempts", req.MaxAttempts,
		"snippets", len(req.SourceSnippets))

	text, err := a.generate(ctx, ai.FixPrompt(req))
	if err != nil {
		return nil, err
	}

	result, err := parseFixResult(text)
	if err != nil {
		log.Error("failed to parse fix proposal", "error", err)
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error parsing fix proposal", err)
	}

	log.Info("fix proposal received",
		"confidence", result.Confidence,
		"requires_code_change", result.RequiresCodeChange)
	return result, nil
}

func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", domainErrors.NewAppError(domainErrors.TypeAI, "error generating content", err)
	}

	text := formatResponse(resp)
	if text == "" {
		return "", domainErrors.NewAppError(domainErrors.TypeAI, "empty response from AI", nil)
	}
	return text, nil
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.Candidates == nil {
		return ""
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

func parseAnalysis(text string) (*models.RequirementAnalysis, error) {
	payload := ai.ExtractJSON(text)

	var analysis models.RequirementAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("error decoding analysis JSON: %w", err)
	}

	if analysis.CppStandard == "" {
		analysis.CppStandard = "17"
	}
	return &analysis, nil
}

// generatedFiles mirrors the JSON shape the generation prompt asks for. The
// workflow key differs from its repository path on purpose: the model only
// names the file, publishing decides where it lives.
type generatedFiles struct {
	Manifest    string `json:"vcpkg.json"`
	BuildScript string `json:"CMakeLists.txt"`
	Workflow    string `json:"workflow.yml"`
}

func parseGeneratedFiles(text string) (models.BuildFileSet, error) {
	payload := ai.ExtractJSON(text)

	var files generatedFiles
	if err := json.Unmarshal([]byte(payload), &files); err != nil {
		return nil, fmt.Errorf("error decoding build files JSON: %w", err)
	}

	if files.Manifest == "" || files.BuildScript == "" || files.Workflow == "" {
		return nil, fmt.Errorf("incomplete build file set in response")
	}

	return models.BuildFileSet{
		models.ManifestPath:    files.Manifest,
		models.BuildScriptPath: files.BuildScript,
		models.WorkflowPath:    files.Workflow,
	}, nil
}

func parseFixResult(text string) (*models.FixResult, error) {
	payload := ai.ExtractJSON(text)

	var result models.FixResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("error decoding fix JSON: %w", err)
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return &result, nil
}
