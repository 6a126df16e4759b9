package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thomas-vilte/matebuild/internal/models"
)

func TestAnalysisPrompt(t *testing.T) {
	t.Run("orders files by path and truncates contents", func(t *testing.T) {
		files := models.SourceFileSet{
			"z_last.cpp":  strings.Repeat("x", MaxFileChars+500),
			"a_first.cpp": "int main() {}",
		}

		prompt := AnalysisPrompt(files)

		first := strings.Index(prompt, "=== a_first.cpp ===")
		last := strings.Index(prompt, "=== z_last.cpp ===")
		assert.Greater(t, last, first)
		assert.NotContains(t, prompt, strings.Repeat("x", MaxFileChars+1))
		assert.Contains(t, prompt, `"cpp_standard"`)
	})
}

func TestGenerationPrompt(t *testing.T) {
	analysis := &models.RequirementAnalysis{
		Dependencies: []string{"boost", "openssl"},
		CppStandard:  "20",
		SourceFiles:  []string{"main.cpp"},
	}

	t.Run("includes project context and platforms", func(t *testing.T) {
		prompt := GenerationPrompt("MyTool", analysis, []string{"ubuntu", "windows"})

		assert.Contains(t, prompt, "Project Name: MyTool")
		assert.Contains(t, prompt, "Dependencies: boost, openssl")
		assert.Contains(t, prompt, "C++ Standard: 20")
		assert.Contains(t, prompt, "The workflow should build for: ubuntu, windows")
	})

	t.Run("defaults special requirements to None", func(t *testing.T) {
		prompt := GenerationPrompt("MyTool", analysis, []string{"ubuntu"})

		assert.Contains(t, prompt, "Special Requirements: None")
	})
}

func TestFixPrompt(t *testing.T) {
	files := models.BuildFileSet{
		models.ManifestPath:    `{"name": "demo"}`,
		models.BuildScriptPath: "cmake_minimum_required(VERSION 3.16)",
	}

	t.Run("includes the attempt number and error log", func(t *testing.T) {
		prompt := FixPrompt(models.FixRequest{
			ErrorLog:     "error: boost/asio.hpp not found",
			CurrentFiles: files,
			Attempt:      2,
			MaxAttempts:  5,
		})

		assert.Contains(t, prompt, "Build attempt 2 failed")
		assert.Contains(t, prompt, "error: boost/asio.hpp not found")
		assert.Contains(t, prompt, `{"name": "demo"}`)
		assert.Contains(t, prompt, `"requires_code_change"`)
		assert.NotContains(t, prompt, "(snippet)")
	})

	t.Run("renders snippets in path order", func(t *testing.T) {
		prompt := FixPrompt(models.FixRequest{
			ErrorLog:     "errors",
			CurrentFiles: files,
			Attempt:      3,
			MaxAttempts:  5,
			SourceSnippets: map[string]string{
				"src/b.cpp": "void b();",
				"src/a.cpp": "void a();",
			},
		})

		first := strings.Index(prompt, "=== src/a.cpp (snippet) ===")
		second := strings.Index(prompt, "=== src/b.cpp (snippet) ===")
		assert.Greater(t, second, first)
		assert.GreaterOrEqual(t, first, 0)
	})

	t.Run("substitutes N/A for missing build files", func(t *testing.T) {
		prompt := FixPrompt(models.FixRequest{
			ErrorLog:     "errors",
			CurrentFiles: models.BuildFileSet{},
			Attempt:      1,
			MaxAttempts:  5,
		})

		assert.Contains(t, prompt, "vcpkg.json: N/A")
		assert.Contains(t, prompt, "CMakeLists.txt: N/A")
	})

	t.Run("truncates an oversized error log", func(t *testing.T) {
		prompt := FixPrompt(models.FixRequest{
			ErrorLog:     strings.Repeat("e", MaxErrorLogChars+1000),
			CurrentFiles: files,
			Attempt:      1,
			MaxAttempts:  5,
		})

		assert.NotContains(t, prompt, strings.Repeat("e", MaxErrorLogChars+1))
	})
}
