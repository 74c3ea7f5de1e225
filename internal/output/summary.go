package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const summaryFile = "summary.json"

// FileFailure records why one input file produced no output.
type FileFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// JobSummary describes a finished batch run.
type JobSummary struct {
	InputDir    string        `json:"input_dir"`
	OutputDir   string        `json:"output_dir"`
	Scanned     int           `json:"scanned"`
	Successful  int           `json:"successful"`
	Failed      int           `json:"failed"`
	OutputFiles []string      `json:"output_files"`
	Failures    []FileFailure `json:"failures,omitempty"`
	LogPath     string        `json:"log_path,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    string        `json:"duration"`
}

// Text renders the summary block printed at the end of a batch run.
func (s JobSummary) Text() string {
	rule := strings.Repeat("=", 25)
	var b strings.Builder
	fmt.Fprintf(&b, "%s JOB SUMMARY %s\n", rule, rule)
	fmt.Fprintf(&b, "  - Total HTML files scanned:   %d\n", s.Scanned)
	fmt.Fprintf(&b, "  - Successful extractions:     %d\n", s.Successful)
	fmt.Fprintf(&b, "  - Failed extractions:         %d\n", s.Failed)
	fmt.Fprintf(&b, "  - Total output files created: %d (.md)\n", len(s.OutputFiles))
	if s.LogPath != "" {
		fmt.Fprintf(&b, "  - Detailed log saved to: '%s'\n", s.LogPath)
	}
	b.WriteString(strings.Repeat("=", 63))
	b.WriteString("\n")
	return b.String()
}

func WriteJobSummary(outputDir string, s JobSummary) (string, error) {
	if outputDir == "" {
		outputDir = DefaultDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	if s.OutputFiles == nil {
		s.OutputFiles = []string{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, summaryFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

func ReadJobSummary(outputDir string) (JobSummary, error) {
	if outputDir == "" {
		outputDir = DefaultDir
	}
	data, err := os.ReadFile(filepath.Join(outputDir, summaryFile))
	if err != nil {
		return JobSummary{}, err
	}
	var s JobSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return JobSummary{}, err
	}
	return s, nil
}
