package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeCI            ErrorType = "CI"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrGeminiKeyMissing = NewAppError(TypeConfiguration, "Gemini API key is not set", nil).
				WithSuggestion("Add GEMINI_API_KEY to the secrets file, then run: matebuild secrets reload")

	ErrGitHubTokenMissing = NewAppError(TypeConfiguration, "GitHub token is not set", nil).
				WithSuggestion("Add GITHUB_TOKEN to the secrets file, then run: matebuild secrets reload")

	ErrRepoURLRequired = NewAppError(TypeConfiguration, "Repository URL is required", nil).
				WithSuggestion("Pass the repository with: matebuild run --repo https://github.com/owner/repo")

	ErrProjectNameRequired = NewAppError(TypeConfiguration, "Project name is required", nil).
				WithSuggestion("Pass a name with: matebuild run --name MyProject")

	ErrInvalidRepoURL = NewAppError(TypeConfiguration, "Repository URL is not a valid GitHub URL", nil).
				WithSuggestion("Expected format: https://github.com/owner/repo")
)

// VCS errors
var (
	ErrFileNotFound = NewAppError(TypeVCS, "File not found in repository", nil)

	ErrPublishFile = NewAppError(TypeVCS, "Failed to publish file to repository", nil).
			WithSuggestion("Check that the token has the 'repo' and 'workflow' scopes")
)

// CI errors
var (
	ErrNoSourcesFound = NewAppError(TypeCI, "No C/C++ source files found in repository", nil).
				WithSuggestion("Make sure the repository contains .cpp, .cc, .c, .h or .hpp files")

	ErrAttemptsExhausted = NewAppError(TypeCI, "Build did not succeed within the attempt budget", nil).
				WithSuggestion("Check the workflow logs on GitHub and adjust the build files manually")
)
