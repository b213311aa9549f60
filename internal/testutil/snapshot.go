package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Snapshot represents a parsed snapshot file.
type Snapshot struct {
	Description string            // what the case checks
	InputFile   string            // input file the snapshot belongs to
	Expected    string            // expected output
	RawMeta     map[string]string // raw metadata fields
}

// ParseSnapshotFile parses a snapshot file.
func ParseSnapshotFile(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(string(content))
}

// ParseSnapshot parses the content of a snapshot file.
//
// Format: ---\n<key: value metadata>\n---\n<expected output>. One trailing
// newline of the expected output is dropped.
func ParseSnapshot(content string) (*Snapshot, error) {
	snap := &Snapshot{
		RawMeta: make(map[string]string),
	}

	content = strings.TrimPrefix(content, "---\n")
	parts := strings.SplitN(content, "\n---\n", 2)

	if len(parts) == 2 {
		scanner := bufio.NewScanner(strings.NewReader(parts[0]))
		for scanner.Scan() {
			line := scanner.Text()
			idx := strings.Index(line, ":")
			if idx < 0 {
				continue
			}
			val := strings.TrimSpace(line[idx+1:])
			if strings.HasPrefix(val, "\"") {
				val = parseQuotedString(val)
			}
			snap.RawMeta[strings.TrimSpace(line[:idx])] = val
		}

		snap.Description = snap.RawMeta["description"]
		snap.InputFile = snap.RawMeta["input_file"]
		snap.Expected = strings.TrimSuffix(parts[1], "\n")
	} else {
		snap.Expected = strings.TrimSuffix(content, "\n")
	}

	return snap, nil
}

// parseQuotedString handles escaped characters in quoted strings.
func parseQuotedString(s string) string {
	if len(s) < 2 {
		return s
	}

	if strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") {
		s = s[1 : len(s)-1]
	}

	s = strings.ReplaceAll(s, "\\n", "\n")
	s = strings.ReplaceAll(s, "\\t", "\t")
	s = strings.ReplaceAll(s, "\\\"", "\"")
	s = strings.ReplaceAll(s, "\\\\", "\\")

	return s
}

// FindSnapshotFile finds the snapshot file for a given input file:
// <snapshotDir>/<base name of input>.snap.
func FindSnapshotFile(snapshotDir, inputFile string) string {
	return filepath.Join(snapshotDir, filepath.Base(inputFile)+".snap")
}
