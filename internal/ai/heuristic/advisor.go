// Package heuristic implements a deterministic BuildAdvisor that never
// touches the network. It backs the model-based advisor whenever the remote
// call or its response parsing fails.
package heuristic

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/thomas-vilte/matebuild/internal/models"
	"github.com/thomas-vilte/matebuild/internal/ports"
)

var _ ports.BuildAdvisor = (*Advisor)(nil)

type Advisor struct{}

func NewAdvisor() *Advisor {
	return &Advisor{}
}

// includeMarkers maps a substring to the vcpkg package it implies.
var includeMarkers = []struct {
	marker string
	dep    string
}{
	{"#include <boost", "boost"},
	{"#include <openssl", "openssl"},
	{"#include <curl", "curl"},
	{"nlohmann/json", "nlohmann-json"},
}

// runnerImages maps platform names to GitHub Actions runner labels.
var runnerImages = map[string]string{
	"ubuntu":  "ubuntu-latest",
	"windows": "windows-latest",
	"macos":   "macos-latest",
}

// AnalyzeRequirements scans include directives and file extensions. It
// always reports C++17: without a compiler we cannot tell, and 17 builds
// everything the include scan can detect.
func (a *Advisor) AnalyzeRequirements(_ context.Context, files models.SourceFileSet) (*models.RequirementAnalysis, error) {
	depSet := make(map[string]struct{})
	var sourceFiles []string

	paths := files.Paths()
	sort.Strings(paths)

	for _, path := range paths {
		if strings.HasSuffix(path, ".cpp") || strings.HasSuffix(path, ".cc") {
			sourceFiles = append(sourceFiles, path)
		}
		for _, m := range includeMarkers {
			if strings.Contains(files[path], m.marker) {
				depSet[m.dep] = struct{}{}
			}
		}
	}

	deps := make([]string, 0, len(depSet))
	for dep := range depSet {
		deps = append(deps, dep)
	}
	sort.Strings(deps)

	return &models.RequirementAnalysis{
		Dependencies: deps,
		CppStandard:  "17",
		SourceFiles:  sourceFiles,
	}, nil
}

// GenerateBuildFiles renders fixed templates from the analysis.
func (a *Advisor) GenerateBuildFiles(_ context.Context, projectName string, analysis *models.RequirementAnalysis, targetPlatforms []string) (models.BuildFileSet, error) {
	manifest, err := a.manifest(projectName, analysis)
	if err != nil {
		return nil, err
	}

	return models.BuildFileSet{
		models.ManifestPath:    manifest,
		models.BuildScriptPath: a.buildScript(projectName, analysis),
		models.WorkflowPath:    a.workflow(targetPlatforms),
	}, nil
}

// ProposeFix has nothing to diagnose with; it returns a zero-confidence
// result so the loop logs the failure and moves on.
func (a *Advisor) ProposeFix(_ context.Context, req models.FixRequest) (*models.FixResult, error) {
	return &models.FixResult{
		Diagnosis:  fmt.Sprintf("Automatic analysis unavailable for attempt %d; inspect the CI logs manually", req.Attempt),
		Confidence: 0,
	}, nil
}

func (a *Advisor) manifest(projectName string, analysis *models.RequirementAnalysis) (string, error) {
	deps := analysis.Dependencies
	if deps == nil {
		deps = []string{}
	}
	doc := struct {
		Name         string   `json:"name"`
		Version      string   `json:"version"`
		Dependencies []string `json:"dependencies"`
	}{
		Name:         strings.ToLower(strings.ReplaceAll(projectName, " ", "-")),
		Version:      "1.0.0",
		Dependencies: deps,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding manifest: %w", err)
	}
	return string(data), nil
}

func (a *Advisor) buildScript(projectName string, analysis *models.RequirementAnalysis) string {
	standard := analysis.CppStandard
	if standard == "" {
		standard = "17"
	}
	return fmt.Sprintf(`cmake_minimum_required(VERSION 3.16)
project(%s)

set(CMAKE_CXX_STANDARD %s)
set(CMAKE_CXX_STANDARD_REQUIRED ON)

add_executable(%s %s)
`, projectName, standard, projectName, strings.Join(analysis.SourceFiles, " "))
}

func (a *Advisor) workflow(targetPlatforms []string) string {
	images := make([]string, 0, len(targetPlatforms))
	for _, p := range targetPlatforms {
		if img, ok := runnerImages[p]; ok {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		images = []string{"ubuntu-latest"}
	}

	return fmt.Sprintf(`name: Build
on: [push, pull_request]
jobs:
  build:
    strategy:
      matrix:
        os: [%s]
    runs-on: ${{ matrix.os }}
    steps:
    - uses: actions/checkout@v4
    - name: Configure
      run: cmake -B build -S .
    - name: Build
      run: cmake --build build
`, strings.Join(images, ", "))
}
