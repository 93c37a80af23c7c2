// Package grader implements the autograding harness: it boots the API
// server as a subprocess, waits for it to come up, drives a fixed
// sequence of scored HTTP checks against it, and writes a JSON report.
//
// The grader talks to the server exactly the way a student's client
// would — over HTTP, no shared memory, no reaching into packages. If a
// check passes here, the same request from curl passes too.
package grader

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is the YAML grading configuration.
//
// Example:
//
//	server:
//	  command: ["go", "run", "./cmd/server"]
//	  port: 8091
//	  db_path: /tmp/grading.db
//	  jwt_secret: grading-secret-not-for-prod
//	  startup_timeout: 30s
//	checks:
//	  request_timeout: 5s
type Scenario struct {
	Server ServerConfig `yaml:"server"`
	Checks ChecksConfig `yaml:"checks"`
}

// ServerConfig describes how to launch the server under test.
//
// Durations are strings ("30s", "1m") because yaml.v3 doesn't decode
// time.Duration; the parsed values are resolved in LoadScenario and
// exposed via StartupTimeout().
type ServerConfig struct {
	// Command is the argv to exec, e.g. ["go", "run", "./cmd/server"]
	// or ["./bin/server"]. The grader never shells out — no quoting bugs.
	Command []string `yaml:"command"`

	// Port the server will listen on. Passed via the PORT env var.
	Port int `yaml:"port"`

	// DBPath is where the server under test keeps its SQLite file.
	// The grader removes it before starting so every run begins from an
	// empty database, then passes it via DB_PATH.
	DBPath string `yaml:"db_path"`

	// JWTSecret is passed via JWT_SECRET so the auth checks run
	// against a known signing key.
	JWTSecret string `yaml:"jwt_secret"`

	// RawStartupTimeout bounds the /healthz readiness poll. Default 30s.
	RawStartupTimeout string `yaml:"startup_timeout"`

	startupTimeout time.Duration
}

// StartupTimeout returns the resolved readiness-poll bound.
func (c ServerConfig) StartupTimeout() time.Duration { return c.startupTimeout }

// ChecksConfig tunes the check runner.
type ChecksConfig struct {
	// RawRequestTimeout bounds each individual HTTP request. Default 5s.
	RawRequestTimeout string `yaml:"request_timeout"`

	requestTimeout time.Duration
}

// RequestTimeout returns the resolved per-request bound.
func (c ChecksConfig) RequestTimeout() time.Duration { return c.requestTimeout }

// LoadScenario reads and validates a scenario file, filling defaults
// for anything optional.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grader: reading scenario: %w", err)
	}

	scenario := &Scenario{}
	if err := yaml.Unmarshal(raw, scenario); err != nil {
		return nil, fmt.Errorf("grader: parsing scenario: %w", err)
	}

	if len(scenario.Server.Command) == 0 {
		return nil, fmt.Errorf("grader: scenario is missing server.command")
	}
	if scenario.Server.Port <= 0 || scenario.Server.Port > 65535 {
		return nil, fmt.Errorf("grader: invalid server.port %d", scenario.Server.Port)
	}
	if scenario.Server.DBPath == "" {
		return nil, fmt.Errorf("grader: scenario is missing server.db_path")
	}
	if scenario.Server.JWTSecret == "" {
		return nil, fmt.Errorf("grader: scenario is missing server.jwt_secret")
	}

	var err2 error
	scenario.Server.startupTimeout, err2 = parseDuration(scenario.Server.RawStartupTimeout, 30*time.Second)
	if err2 != nil {
		return nil, fmt.Errorf("grader: invalid server.startup_timeout: %w", err2)
	}
	scenario.Checks.requestTimeout, err2 = parseDuration(scenario.Checks.RawRequestTimeout, 5*time.Second)
	if err2 != nil {
		return nil, fmt.Errorf("grader: invalid checks.request_timeout: %w", err2)
	}

	return scenario, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", d)
	}
	return d, nil
}
