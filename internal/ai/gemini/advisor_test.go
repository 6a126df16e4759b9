package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matebuild/internal/config"
	domainErrors "github.com/thomas-vilte/matebuild/internal/errors"
	"github.com/thomas-vilte/matebuild/internal/models"
)

func TestNewAdvisor(t *testing.T) {
	t.Run("rejects a missing API key", func(t *testing.T) {
		advisor, err := NewAdvisor(context.Background(), "", &config.Config{}, nil)

		assert.ErrorIs(t, err, domainErrors.ErrGeminiKeyMissing)
		assert.Nil(t, advisor)
	})
}

func TestParseAnalysis(t *testing.T) {
	t.Run("parses a fenced response", func(t *testing.T) {
		text := "```json\n{\"dependencies\": [\"boost\"], \"cpp_standard\": \"20\", \"source_files\": [\"main.cpp\"]}\n```"

		analysis, err := parseAnalysis(text)

		require.NoError(t, err)
		assert.Equal(t, []string{"boost"}, analysis.Dependencies)
		assert.Equal(t, "20", analysis.CppStandard)
		assert.Equal(t, []string{"main.cpp"}, analysis.SourceFiles)
	})

	t.Run("defaults the standard to 17", func(t *testing.T) {
		analysis, err := parseAnalysis(`{"dependencies": []}`)

		require.NoError(t, err)
		assert.Equal(t, "17", analysis.CppStandard)
	})

	t.Run("rejects non-JSON text", func(t *testing.T) {
		_, err := parseAnalysis("I could not analyze the project, sorry.")

		assert.Error(t, err)
	})
}

func TestParseGeneratedFiles(t *testing.T) {
	t.Run("maps the three files to their repository paths", func(t *testing.T) {
		text := `{
			"vcpkg.json": "{\"name\": \"demo\"}",
			"CMakeLists.txt": "cmake_minimum_required(VERSION 3.16)",
			"workflow.yml": "name: Build"
		}`

		files, err := parseGeneratedFiles(text)

		require.NoError(t, err)
		assert.Equal(t, `{"name": "demo"}`, files[models.ManifestPath])
		assert.Equal(t, "cmake_minimum_required(VERSION 3.16)", files[models.BuildScriptPath])
		assert.Equal(t, "name: Build", files[models.WorkflowPath])
	})

	t.Run("rejects an incomplete file set", func(t *testing.T) {
		text := `{"vcpkg.json": "{}", "CMakeLists.txt": ""}`

		_, err := parseGeneratedFiles(text)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "incomplete build file set")
	})
}

func TestParseFixResult(t *testing.T) {
	t.Run("parses a full fix proposal", func(t *testing.T) {
		text := `{
			"diagnosis": "missing dependency in vcpkg.json",
			"vcpkg_changes": "{\"dependencies\": [\"fmt\"]}",
			"cmake_changes": null,
			"workflow_changes": null,
			"code_changes": {
				"main.cpp": {
					"action": "replace",
					"find": "fmt:print",
					"replace": "fmt::print",
					"explanation": "namespace operator typo"
				}
			},
			"confidence": 0.85,
			"requires_code_change": true
		}`

		result, err := parseFixResult(text)

		require.NoError(t, err)
		assert.Equal(t, "missing dependency in vcpkg.json", result.Diagnosis)
		assert.True(t, result.HasFileChanges())
		assert.Empty(t, result.BuildScriptChanges)
		assert.Equal(t, models.EditReplace, result.CodeChanges["main.cpp"].Action)
		assert.InDelta(t, 0.85, result.Confidence, 0.001)
		assert.True(t, result.RequiresCodeChange)
	})

	t.Run("clamps confidence into the unit interval", func(t *testing.T) {
		high, err := parseFixResult(`{"diagnosis": "x", "confidence": 3.5}`)
		require.NoError(t, err)
		assert.Equal(t, 1.0, high.Confidence)

		low, err := parseFixResult(`{"diagnosis": "x", "confidence": -2}`)
		require.NoError(t, err)
		assert.Equal(t, 0.0, low.Confidence)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := parseFixResult(`{"diagnosis": `)

		assert.Error(t, err)
	})
}

func TestFormatResponse(t *testing.T) {
	t.Run("concatenates text parts across candidates", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("{\"a\":"), genai.Text(" 1}")}}},
			},
		}

		assert.Equal(t, `{"a": 1}`, formatResponse(resp))
	})

	t.Run("tolerates nil responses and empty candidates", func(t *testing.T) {
		assert.Empty(t, formatResponse(nil))
		assert.Empty(t, formatResponse(&genai.GenerateContentResponse{}))
		assert.Empty(t, formatResponse(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
	})
}
