package models

// CodeEditAction tells how a proposed source edit should be applied.
type CodeEditAction string

const (
	EditReplace CodeEditAction = "replace"
	EditAdd     CodeEditAction = "add"
	EditRemove  CodeEditAction = "remove"
)

// CodeEdit is a single proposed change to a source file, expressed as an
// exact find/replace pair so it can be applied without parsing C++.
type CodeEdit struct {
	Action      CodeEditAction `json:"action"`
	Find        string         `json:"find"`
	Replace     string         `json:"replace"`
	Explanation string         `json:"explanation"`
}

// FixResult is the advisor's answer to one failed build attempt. Any of the
// three *Changes fields may be empty, meaning "leave that file alone".
// CodeChanges are last-resort edits keyed by source path; the fix loop only
// applies them on the final remediation tier.
type FixResult struct {
	Diagnosis          string              `json:"diagnosis"`
	ManifestChanges    string              `json:"vcpkg_changes"`
	BuildScriptChanges string              `json:"cmake_changes"`
	WorkflowChanges    string              `json:"workflow_changes"`
	CodeChanges        map[string]CodeEdit `json:"code_changes"`
	Confidence         float64             `json:"confidence"`
	RequiresCodeChange bool                `json:"requires_code_change"`
}

// HasFileChanges reports whether the result replaces at least one build file.
func (f *FixResult) HasFileChanges() bool {
	return f.ManifestChanges != "" || f.BuildScriptChanges != "" || f.WorkflowChanges != ""
}

// FixRequest carries everything the advisor needs to diagnose a failed run.
type FixRequest struct {
	ErrorLog       string
	CurrentFiles   BuildFileSet
	Attempt        int
	MaxAttempts    int
	SourceSnippets map[string]string
}
