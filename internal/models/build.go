package models

// SourceFileSet maps repository-relative paths to raw file contents. It is
// populated once per run and treated as read-only afterwards.
type SourceFileSet map[string]string

// Paths returns the file paths in no particular order.
func (s SourceFileSet) Paths() []string {
	paths := make([]string, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}
	return paths
}

// RequirementAnalysis is the advisor's verdict on what a C++ project needs
// to build.
type RequirementAnalysis struct {
	Dependencies        []string `json:"dependencies"`
	CppStandard         string   `json:"cpp_standard"`
	SourceFiles         []string `json:"source_files"`
	SpecialRequirements string   `json:"special_requirements"`
	CMakeFlags          []string `json:"cmake_flags"`
}

// Fixed repository paths for the three generated build files.
const (
	ManifestPath    = "vcpkg.json"
	BuildScriptPath = "CMakeLists.txt"
	WorkflowPath    = ".github/workflows/build.yml"
)

// BuildFilePaths lists the generated files in publish order.
func BuildFilePaths() []string {
	return []string{ManifestPath, BuildScriptPath, WorkflowPath}
}

// BuildFileSet maps a build-file path to its current accepted content. The
// fix loop owns the live set for the duration of a run: every accepted fix
// replaces exactly the entries it names and leaves the rest untouched.
type BuildFileSet map[string]string

// Clone returns an independent copy of the set.
func (b BuildFileSet) Clone() BuildFileSet {
	out := make(BuildFileSet, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
