package grader

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// ServerProcess manages the server-under-test subprocess.
//
// The grader never links the server's code; it runs whatever binary or
// `go run` invocation the scenario names. A server that only works when
// grader and server share a process would be a server that doesn't
// actually work.
type ServerProcess struct {
	cfg    ServerConfig
	cmd    *exec.Cmd
	logger *slog.Logger
}

// NewServerProcess prepares (but does not start) the subprocess.
func NewServerProcess(cfg ServerConfig, logger *slog.Logger) *ServerProcess {
	return &ServerProcess{cfg: cfg, logger: logger}
}

// Start removes any stale database file, then launches the server with
// PORT, DB_PATH, and JWT_SECRET overridden in its environment.
//
// ENV OVER ARGS:
// The server reads its config from env vars, so the grader patches env
// vars — the subprocess equivalent of rewriting a DSN in a config file.
// The rest of the parent environment is inherited (PATH, GOCACHE, etc.,
// which `go run` needs).
func (p *ServerProcess) Start(ctx context.Context) error {
	// Fresh database per run. Also clear SQLite's sidecar files —
	// leftover WAL content would leak rows from a previous run.
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(p.cfg.DBPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("grader: removing stale database: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, p.cfg.Command[0], p.cfg.Command[1:]...)
	cmd.Env = append(os.Environ(),
		"PORT="+strconv.Itoa(p.cfg.Port),
		"DB_PATH="+p.cfg.DBPath,
		"JWT_SECRET="+p.cfg.JWTSecret,
	)
	// Server logs land on the grader's stderr so a failed run is
	// debuggable without re-running by hand.
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("grader: starting server: %w", err)
	}

	p.cmd = cmd
	p.logger.Info("server process started",
		slog.Int("pid", cmd.Process.Pid),
		slog.Int("port", p.cfg.Port),
	)
	return nil
}

// WaitReady polls GET /healthz until the server answers 200 or the
// startup timeout elapses.
//
// Polling beats a fixed sleep both ways: a fast server is graded
// sooner, and a slow one (first `go run` compiles the whole module)
// isn't failed prematurely.
func (p *ServerProcess) WaitReady(ctx context.Context) error {
	deadline := time.Now().Add(p.cfg.StartupTimeout())
	url := fmt.Sprintf("http://localhost:%d/healthz", p.cfg.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("grader: building health request: %w", err)
		}

		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				p.logger.Info("server is ready")
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}

	return fmt.Errorf("grader: server did not become ready within %s", p.cfg.StartupTimeout())
}

// Stop terminates the subprocess: SIGTERM first so the server can run
// its graceful shutdown, SIGKILL if it's still alive five seconds later.
func (p *ServerProcess) Stop() {
	if p.cmd == nil || p.cmd.Process == nil {
		return
	}

	if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		p.cmd.Process.Kill()
		p.cmd.Wait()
		return
	}

	done := make(chan struct{})
	go func() {
		p.cmd.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("server process exited")
	case <-time.After(5 * time.Second):
		p.logger.Warn("server process did not exit, killing")
		p.cmd.Process.Kill()
		<-done
	}
}
