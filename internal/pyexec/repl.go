package pyexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default REPL settings.
const (
	DefaultPythonBin    = "python3"
	DefaultTimeout      = 60 * time.Second
	DefaultArtifactsDir = "artifacts"

	// PlotFileName is the fixed file name figures are saved under in the
	// artifacts directory.
	PlotFileName = "figure.png"
)

// REPL executes Python code with state that persists between calls. Each run
// replays a session state file, executes the new code, and rewrites the state
// file with the resulting top-level variables, so the agent sees something
// close to a long-lived interpreter without one actually being kept alive.
type REPL struct {
	pythonBin    string
	artifactsDir string
	timeout      time.Duration

	sessionDir string
	statePath  string
	mu         sync.Mutex
	closed     bool
}

// NewREPL creates a REPL and runs its interpreter setup code: the matplotlib
// Agg backend is forced so plotting never waits on a display, and the
// artifacts directory is created.
func NewREPL(pythonBin, artifactsDir string, timeout time.Duration) (*REPL, error) {
	if pythonBin == "" {
		pythonBin = DefaultPythonBin
	}
	if artifactsDir == "" {
		artifactsDir = DefaultArtifactsDir
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	absArtifacts, err := filepath.Abs(artifactsDir)
	if err != nil {
		return nil, fmt.Errorf("invalid artifacts directory: %w", err)
	}

	sessionDir := filepath.Join(os.TempDir(), "reasonpy-repl-"+uuid.New().String())
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	statePath := filepath.Join(sessionDir, "session_state.py")
	if err := os.WriteFile(statePath, []byte("# session state\n"), 0644); err != nil {
		os.RemoveAll(sessionDir)
		return nil, fmt.Errorf("failed to initialize session state: %w", err)
	}

	r := &REPL{
		pythonBin:    pythonBin,
		artifactsDir: absArtifacts,
		timeout:      timeout,
		sessionDir:   sessionDir,
		statePath:    statePath,
	}

	setup := fmt.Sprintf(`import matplotlib
matplotlib.use('Agg')
import os
os.makedirs(%q, exist_ok=True)
`, absArtifacts)

	// Setup failure is not fatal: matplotlib may simply not be installed,
	// in which case non-plotting code should still run.
	_ = r.Run(context.Background(), setup)

	return r, nil
}

// PlotPath returns the path plot rewrites save figures to.
func (r *REPL) PlotPath() string {
	return filepath.Join(r.artifactsDir, PlotFileName)
}

// ArtifactsDir returns the directory plot images are written to.
func (r *REPL) ArtifactsDir() string {
	return r.artifactsDir
}

// Run executes code and returns its textual output. Failures are reported as
// an "Error: ..." string rather than an error value, since the result goes
// straight back to the agent as tool output.
func (r *REPL) Run(ctx context.Context, code string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "Error: interpreter session is closed"
	}

	// The artifacts directory must exist before every run; the agent may
	// have removed it between calls.
	if err := os.MkdirAll(r.artifactsDir, 0755); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	stdout, stderr, err := r.runScript(ctx, code)
	if err != nil {
		if stderr != "" {
			return fmt.Sprintf("Error: %s", stderr)
		}
		return fmt.Sprintf("Error: %v", err)
	}

	out := stdout
	if stderr != "" {
		if out != "" {
			out += "\n"
		}
		out += stderr
	}
	return out
}

// runScript wraps the code in a script that replays the session state first
// and rewrites it afterwards, then executes it with the configured
// interpreter.
func (r *REPL) runScript(ctx context.Context, code string) (stdout, stderr string, err error) {
	script := fmt.Sprintf(`try:
    exec(open(%q).read())
except Exception:
    pass

%s

import inspect
with open(%q, "w") as _state:
    _state.write("# session state\n")
    for _name, _value in list(locals().items()):
        if not _name.startswith("_") and not inspect.ismodule(_value):
            try:
                _state.write("{} = {!r}\n".format(_name, _value))
            except Exception:
                pass
`, r.statePath, code, r.statePath)

	scriptPath := filepath.Join(r.sessionDir, fmt.Sprintf("exec_%d.py", time.Now().UnixNano()))
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write execution script: %w", err)
	}
	defer os.Remove(scriptPath)

	execCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, r.pythonBin, scriptPath)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()

	if execCtx.Err() == context.DeadlineExceeded {
		return stdoutBuf.String(), stderrBuf.String(), fmt.Errorf("execution timed out after %v", r.timeout)
	}

	return stdoutBuf.String(), stderrBuf.String(), runErr
}

// Close removes the session state. Safe to call more than once.
func (r *REPL) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return os.RemoveAll(r.sessionDir)
}
