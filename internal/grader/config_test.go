package grader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing scenario file: %v", err)
	}
	return path
}

func TestLoadScenario_Full(t *testing.T) {
	path := writeScenario(t, `
server:
  command: ["go", "run", "./cmd/server"]
  port: 8091
  db_path: /tmp/grading.db
  jwt_secret: grading-secret
  startup_timeout: 45s
checks:
  request_timeout: 2s
`)

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}

	if got := scenario.Server.Command; len(got) != 3 || got[0] != "go" {
		t.Errorf("Command = %v, want [go run ./cmd/server]", got)
	}
	if scenario.Server.Port != 8091 {
		t.Errorf("Port = %d, want 8091", scenario.Server.Port)
	}
	if scenario.Server.StartupTimeout() != 45*time.Second {
		t.Errorf("StartupTimeout = %s, want 45s", scenario.Server.StartupTimeout())
	}
	if scenario.Checks.RequestTimeout() != 2*time.Second {
		t.Errorf("RequestTimeout = %s, want 2s", scenario.Checks.RequestTimeout())
	}
}

func TestLoadScenario_Defaults(t *testing.T) {
	path := writeScenario(t, `
server:
  command: ["./bin/server"]
  port: 9000
  db_path: /tmp/x.db
  jwt_secret: s3cret-s3cret-s3cret
`)

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}

	if scenario.Server.StartupTimeout() != 30*time.Second {
		t.Errorf("default StartupTimeout = %s, want 30s", scenario.Server.StartupTimeout())
	}
	if scenario.Checks.RequestTimeout() != 5*time.Second {
		t.Errorf("default RequestTimeout = %s, want 5s", scenario.Checks.RequestTimeout())
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing command", "server:\n  port: 8091\n  db_path: /tmp/x.db\n  jwt_secret: s\n"},
		{"bad port", "server:\n  command: [\"x\"]\n  port: 99999\n  db_path: /tmp/x.db\n  jwt_secret: s\n"},
		{"missing db_path", "server:\n  command: [\"x\"]\n  port: 8091\n  jwt_secret: s\n"},
		{"bad duration", "server:\n  command: [\"x\"]\n  port: 8091\n  db_path: /tmp/x.db\n  jwt_secret: s\n  startup_timeout: soon\n"},
		{"not yaml", "{{{{"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScenario(t, tc.content)
			if _, err := LoadScenario(path); err == nil {
				t.Error("LoadScenario() should have failed")
			}
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadScenario() should fail on a missing file")
	}
}
