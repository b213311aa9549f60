// Package testutil provides file driven testing utilities for hui-go.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// TestInput represents a parsed test input file.
type TestInput struct {
	Context  any    // decoded JSON context
	Template string // template source after ---
}

// ParseTestInputFile reads and parses a test input file.
func ParseTestInputFile(path string) (*TestInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTestInput(string(content))
}

// ParseTestInput parses test input content.
// Format: JSON context\n---\ntemplate
//
// One trailing newline of the template is dropped so that input files can
// end with a newline.
func ParseTestInput(content string) (*TestInput, error) {
	input := &TestInput{}

	parts := strings.SplitN(content, "\n---\n", 2)

	if len(parts) >= 1 && strings.TrimSpace(parts[0]) != "" {
		if err := json.Unmarshal([]byte(parts[0]), &input.Context); err != nil {
			return nil, err
		}
	}

	if len(parts) >= 2 {
		input.Template = strings.TrimSuffix(parts[1], "\n")
	}

	return input, nil
}

// GlobTestInputs finds all test input files matching a pattern.
func GlobTestInputs(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// TestResult represents the result of running a single test.
type TestResult struct {
	Name     string
	Expected string
	Actual   string
}

// Diff returns a simple diff between expected and actual output.
func (r *TestResult) Diff() string {
	if r.Expected == r.Actual {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("=== Expected ===\n")
	sb.WriteString(r.Expected)
	if !strings.HasSuffix(r.Expected, "\n") {
		sb.WriteString("⏎\n") // missing newline
	}
	sb.WriteString("=== Actual ===\n")
	sb.WriteString(r.Actual)
	if !strings.HasSuffix(r.Actual, "\n") {
		sb.WriteString("⏎\n")
	}
	sb.WriteString("=== End ===\n")
	return sb.String()
}
