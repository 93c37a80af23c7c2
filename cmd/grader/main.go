// Package main is the entry point for the autograder CLI.
//
// Usage:
//
//	grader -scenario grading.yaml -out report.json
//
// The grader boots the API server described in the scenario file as a
// subprocess (with PORT/DB_PATH/JWT_SECRET patched in its environment),
// waits for /healthz, runs the scored check sequence over HTTP, and
// writes a JSON report. Exit code 0 means the grader itself ran cleanly
// — a low score is a valid result, not a grader failure.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sakif/course-api/internal/grader"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	scenarioPath := flag.String("scenario", "grading.yaml", "path to the YAML grading scenario")
	outPath := flag.String("out", "", "path for the JSON report (default: stdout)")
	flag.Parse()

	// Grader diagnostics go to stderr so stdout stays clean for the
	// report when -out is not given.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	scenario, err := grader.LoadScenario(*scenarioPath)
	if err != nil {
		logger.Error("failed to load scenario", slog.String("error", err.Error()))
		exitCode = 1
		return
	}

	// Ctrl+C tears down the server subprocess before the grader exits —
	// CommandContext kills the child when this context is cancelled.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report := grader.Run(ctx, scenario, logger)

	if err := report.Write(*outPath); err != nil {
		logger.Error("failed to write report", slog.String("error", err.Error()))
		exitCode = 1
		return
	}

	logger.Info("grading complete",
		slog.Float64("score", report.Score),
		slog.Float64("maxScore", report.MaxScore),
	)
}
