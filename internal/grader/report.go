package grader

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report is the grading result, shaped so common autograder frontends
// (Gradescope and friends) can render it directly: an overall score, a
// per-test breakdown, and a free-text output field.
type Report struct {
	Score    float64         `json:"score"`
	MaxScore float64         `json:"max_score"`
	Tests    []TestResult    `json:"tests"`
	Output   string          `json:"output"`
	Latency  *LatencySummary `json:"latency,omitempty"`
}

// TestResult is one check's outcome. Output is empty on success and
// carries the failure detail otherwise — the student reads it, so it
// names the request and the status mismatch, never internals.
type TestResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Output   string  `json:"output,omitempty"`
}

// Write marshals the report. An empty path means stdout.
func (r *Report) Write(path string) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("grader: encoding report: %w", err)
	}
	raw = append(raw, '\n')

	if path == "" {
		_, err = os.Stdout.Write(raw)
		return err
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("grader: writing report: %w", err)
	}
	return nil
}
