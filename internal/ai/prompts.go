package ai

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/thomas-vilte/matebuild/internal/models"
)

// Character budgets applied before prompt assembly, to stay inside the
// model's context limits.
const (
	MaxFileChars        = 2000
	MaxErrorLogChars    = 3000
	MaxSnippetChars     = 1000
	MaxManifestChars    = 500
	MaxBuildScriptChars = 1000
)

// Truncate cuts s to at most limit bytes, backing up so the cut never
// splits a multi-byte rune.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

const analysisInstructions = `Please analyze these C++ files and provide:
1. All required dependencies (libraries) for vcpkg.json
2. The minimum C++ standard required
3. Any special build requirements or flags
4. List of all source files that should be compiled

Respond in JSON format:
{
    "dependencies": ["lib1", "lib2"],
    "cpp_standard": "17",
    "source_files": ["main.cpp", "other.cpp"],
    "special_requirements": "any special notes",
    "cmake_flags": []
}`

// AnalysisPrompt builds the requirements-analysis prompt. File contents are
// truncated and ordered by path so the prompt is deterministic.
func AnalysisPrompt(files models.SourceFileSet) string {
	paths := files.Paths()
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("I have the following C++ project files:\n\n")
	for _, path := range paths {
		b.WriteString(fmt.Sprintf("=== %s ===\n%s\n...\n\n", path, Truncate(files[path], MaxFileChars)))
	}
	b.WriteString(analysisInstructions)
	return b.String()
}

const generationTemplate = `Generate build files for a C++ project with these requirements:

Project Name: %s
Dependencies: %s
C++ Standard: %s
Source Files: %s
Target OS: %s
Special Requirements: %s

Please generate:
1. vcpkg.json
2. CMakeLists.txt
3. GitHub Actions workflow (.github/workflows/build.yml)

The workflow should build for: %s

Respond with JSON containing the content of each file:
{
    "vcpkg.json": "content",
    "CMakeLists.txt": "content",
    "workflow.yml": "content"
}`

// GenerationPrompt builds the build-file generation prompt.
func GenerationPrompt(projectName string, analysis *models.RequirementAnalysis, targetPlatforms []string) string {
	special := analysis.SpecialRequirements
	if special == "" {
		special = "None"
	}
	platforms := strings.Join(targetPlatforms, ", ")
	return fmt.Sprintf(generationTemplate,
		projectName,
		strings.Join(analysis.Dependencies, ", "),
		analysis.CppStandard,
		strings.Join(analysis.SourceFiles, ", "),
		platforms,
		special,
		platforms,
	)
}

const fixInstructions = `Please analyze the errors and provide fixes.

IMPORTANT: Follow this priority order:
1. First 2 attempts: ONLY modify build configuration files (vcpkg.json, CMakeLists.txt, workflow)
2. Middle attempts: Consider minimal code changes only if build config won't work
3. Final attempt: Apply necessary code changes to fix compilation errors

For code changes, provide the EXACT changes needed with clear before/after.

Respond with JSON:
{
    "diagnosis": "what went wrong",
    "vcpkg_changes": "new vcpkg.json content or null",
    "cmake_changes": "new CMakeLists.txt content or null",
    "workflow_changes": "new workflow content or null",
    "code_changes": {
        "filename": {
            "action": "replace|add|remove",
            "find": "exact text to find",
            "replace": "exact replacement text",
            "explanation": "why this change is needed"
        }
    },
    "confidence": 0.0 to 1.0,
    "requires_code_change": true/false
}`

// FixPrompt builds the remediation prompt for one failed attempt. Snippets
// are only present from the third attempt on; the caller decides that.
func FixPrompt(req models.FixRequest) string {
	var snippets strings.Builder
	if len(req.SourceSnippets) > 0 {
		paths := make([]string, 0, len(req.SourceSnippets))
		for p := range req.SourceSnippets {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			snippets.WriteString(fmt.Sprintf("\n=== %s (snippet) ===\n%s\n...\n", p, Truncate(req.SourceSnippets[p], MaxSnippetChars)))
		}
	}

	manifest := req.CurrentFiles[models.ManifestPath]
	if manifest == "" {
		manifest = "N/A"
	}
	buildScript := req.CurrentFiles[models.BuildScriptPath]
	if buildScript == "" {
		buildScript = "N/A"
	}

	return fmt.Sprintf(`Build attempt %d failed with these errors:

%s

Current build files:
vcpkg.json: %s
CMakeLists.txt: %s
%s
%s`,
		req.Attempt,
		Truncate(req.ErrorLog, MaxErrorLogChars),
		Truncate(manifest, MaxManifestChars),
		Truncate(buildScript, MaxBuildScriptChars),
		snippets.String(),
		fixInstructions,
	)
}
