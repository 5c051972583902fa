// Command replay runs the package test suite and writes a timestamped
// JSON report of what passed, adapted from a before/after comparison
// harness into a plain pass/fail report over this module's own tests —
// there is no "before" implementation to diff against here.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report is the top-level JSON document written to evaluation/reports/.
type Report struct {
	RunID           string      `json:"run_id"`
	StartedAt       string      `json:"started_at"`
	FinishedAt      string      `json:"finished_at"`
	DurationSeconds float64     `json:"duration_seconds"`
	Environment     Environment `json:"environment"`
	Result          TestResult  `json:"result"`
}

type Environment struct {
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

type TestResult struct {
	Passed     bool   `json:"passed"`
	ReturnCode int    `json:"return_code"`
	Output     string `json:"output"`
	NumTests   int    `json:"num_tests"`
	NumPassed  int    `json:"num_passed"`
	NumFailed  int    `json:"num_failed"`
}

func main() {
	fmt.Println("Running group state machine test suite...")

	startTime := time.Now()
	runID := uuid.NewString()

	result := runTests()

	report := Report{
		RunID:     runID,
		StartedAt: startTime.Format(time.RFC3339),
		Environment: Environment{
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "-" + runtime.GOARCH,
		},
		Result: result,
	}

	endTime := time.Now()
	report.FinishedAt = endTime.Format(time.RFC3339)
	report.DurationSeconds = endTime.Sub(startTime).Seconds()

	dateDir := time.Now().Format("2006-01-02")
	timeDir := time.Now().Format("15-04-05")
	reportDir := filepath.Join("evaluation", "reports", dateDir, timeDir)
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		fmt.Printf("error creating report directory: %v\n", err)
		os.Exit(1)
	}

	reportPath := filepath.Join(reportDir, "report.json")
	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Printf("error marshaling report: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(reportPath, reportJSON, 0644); err != nil {
		fmt.Printf("error writing report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nRun ID:   %s\n", runID)
	fmt.Printf("Duration: %.2f seconds\n", report.DurationSeconds)
	fmt.Printf("Result:   %s (%d/%d tests passed)\n", passFail(result.Passed), result.NumPassed, result.NumTests)
	fmt.Printf("Report saved to: %s\n", reportPath)

	if !result.Passed {
		os.Exit(1)
	}
}

func runTests() TestResult {
	result := TestResult{}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command("go", "test", "-v", "-count=1", "-timeout=120s", "./pkg/...", "./cmd/...")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "GO111MODULE=on")

	err := cmd.Run()

	output := stdout.String() + stderr.String()
	result.Output = truncateOutput(output, 8000)

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ReturnCode = exitErr.ExitCode()
		} else {
			result.ReturnCode = 1
		}
	} else {
		result.ReturnCode = 0
		result.Passed = true
	}

	result.NumTests, result.NumPassed, result.NumFailed = countTests(output)
	return result
}

func countTests(output string) (total, passed, failed int) {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "--- PASS:"):
			passed++
			total++
		case strings.HasPrefix(trimmed, "--- FAIL:"):
			failed++
			total++
		}
	}
	return
}

func truncateOutput(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "\n... (output truncated)"
}

func passFail(ok bool) string {
	if ok {
		return "PASSED"
	}
	return "FAILED"
}
