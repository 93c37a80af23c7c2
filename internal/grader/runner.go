package grader

import (
	"context"
	"fmt"
	"log/slog"
)

// Run executes a full grading pass: boot the server, wait for
// readiness, run every check in order, stop the server, and return the
// report.
//
// BOOT FAILURE IS NOT A CRASH:
// If the server never comes up, every check scores zero and the report
// says why — a submission that doesn't start still gets a well-formed
// report, not a grader stack trace.
func Run(ctx context.Context, scenario *Scenario, logger *slog.Logger) *Report {
	checks := DefaultChecks()

	report := &Report{Tests: make([]TestResult, 0, len(checks))}
	for _, check := range checks {
		report.MaxScore += check.Points
	}

	proc := NewServerProcess(scenario.Server, logger)
	if err := proc.Start(ctx); err != nil {
		return failAll(report, checks, fmt.Sprintf("server failed to start: %v", err))
	}
	defer proc.Stop()

	if err := proc.WaitReady(ctx); err != nil {
		return failAll(report, checks, fmt.Sprintf("server never became ready: %v", err))
	}

	client := NewClient(
		fmt.Sprintf("http://localhost:%d", scenario.Server.Port),
		scenario.Checks.RequestTimeout(),
	)

	state := &checkState{}
	for _, check := range checks {
		result := TestResult{Name: check.Name, MaxScore: check.Points}

		if err := check.Fn(ctx, client, state); err != nil {
			result.Output = err.Error()
			logger.Warn("check failed",
				slog.String("check", check.Name),
				slog.String("error", err.Error()),
			)
		} else {
			result.Score = check.Points
			report.Score += check.Points
			logger.Info("check passed", slog.String("check", check.Name))
		}

		report.Tests = append(report.Tests, result)
	}

	latency := client.Latency()
	report.Latency = &latency
	report.Output = fmt.Sprintf("scored %.0f of %.0f across %d checks",
		report.Score, report.MaxScore, len(checks))

	return report
}

// failAll zeroes every check with a shared explanation. The per-test
// breakdown still lists each check so the student sees what would have
// been graded.
func failAll(report *Report, checks []Check, reason string) *Report {
	for _, check := range checks {
		report.Tests = append(report.Tests, TestResult{
			Name:     check.Name,
			MaxScore: check.Points,
			Output:   "not run",
		})
	}
	report.Output = reason
	return report
}
