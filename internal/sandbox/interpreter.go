// Package sandbox manages remote Python execution sessions.
package sandbox

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// ErrMsgUnavailable is the fixed message returned for every execution attempt
// when no sandbox session could be initialized.
const ErrMsgUnavailable = "sandbox not initialized: check your sandbox API key"

// ExecResult is the outcome of a single execution request. It is derived from
// exactly one request and never persisted.
type ExecResult struct {
	Stdout        string
	InstallOutput string
	Error         string
	Success       bool
}

// Runtime is the low-level execution backend behind a Session. The remote
// HTTP service and the local Docker container both implement it.
type Runtime interface {
	// RunCommand executes a shell command (e.g. pip install) in the sandbox.
	RunCommand(ctx context.Context, command string) (stdout, stderr string, exitCode int, err error)
	// RunCode executes Python code in the sandbox. errText carries a Python
	// level error (exception); err carries a transport level failure.
	RunCode(ctx context.Context, code string) (output, errText string, err error)
	// Close tears the backend down.
	Close() error
}

// Session wraps a Runtime with the lifecycle the agent needs: lazy creation at
// startup, a fixed error when unavailable, install-then-run execution, and
// close-once teardown. It is held as process-wide state by the CLI.
type Session struct {
	mu      sync.Mutex
	runtime Runtime
	closed  bool
}

// NewSession creates a sandbox session for the configured backend. If the
// session cannot be created (most commonly: no API key), the returned Session
// is still usable — every Execute just reports the fixed unavailable message.
func NewSession(cfg Config) *Session {
	cfg.Validate()

	var rt Runtime
	var err error

	switch cfg.Backend {
	case BackendDocker:
		rt, err = newDockerRuntime(cfg)
	default:
		if cfg.APIKey == "" {
			return &Session{}
		}
		rt, err = newRemoteRuntime(cfg)
	}
	if err != nil {
		return &Session{}
	}

	return &Session{runtime: rt}
}

// NewSessionWithRuntime wires a Session to an existing Runtime. Useful for
// tests and for sharing a backend.
func NewSessionWithRuntime(rt Runtime) *Session {
	return &Session{runtime: rt}
}

// Available reports whether the session has a live backend.
func (s *Session) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runtime != nil && !s.closed
}

// Execute installs the requested packages (if any) and then runs the code.
// All failures — unavailable session, blocked install spec, transport errors —
// are converted into an ExecResult with Success=false; Execute never returns
// an error and never retries.
//
// An install failure is captured in InstallOutput but does not abort the code
// execution attempt: the package may already be present in the sandbox image.
func (s *Session) Execute(ctx context.Context, code, packages string) *ExecResult {
	s.mu.Lock()
	rt := s.runtime
	closed := s.closed
	s.mu.Unlock()

	if rt == nil || closed {
		return &ExecResult{Error: ErrMsgUnavailable, Success: false}
	}

	installOutput := ""
	if wantsInstall(packages) {
		if reason := GuardInstallSpec(packages); reason != "" {
			return &ExecResult{Error: "package install blocked: " + reason, Success: false}
		}

		stdout, stderr, _, err := rt.RunCommand(ctx, "pip install "+packages)
		installOutput = stdout
		if stderr != "" {
			if installOutput != "" {
				installOutput += "\n"
			}
			installOutput += stderr
		}
		if err != nil {
			if installOutput != "" {
				installOutput += "\n"
			}
			installOutput += fmt.Sprintf("install failed: %v", err)
		}
	}

	output, errText, err := rt.RunCode(ctx, code)
	if err != nil {
		return &ExecResult{
			InstallOutput: installOutput,
			Error:         err.Error(),
			Success:       false,
		}
	}

	return &ExecResult{
		Stdout:        output,
		InstallOutput: installOutput,
		Error:         errText,
		Success:       errText == "",
	}
}

// Close tears down the backend. It is idempotent: the CLI both defers it and
// runs it from the signal handler, and the agent can trigger it through the
// cleanup tool.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.runtime == nil {
		s.closed = true
		return nil
	}
	s.closed = true
	return s.runtime.Close()
}

// wantsInstall reports whether the package spec actually requests an install.
// The agent is instructed to pass "none" when nothing is needed.
func wantsInstall(packages string) bool {
	packages = strings.TrimSpace(packages)
	return packages != "" && !strings.EqualFold(packages, "none")
}
