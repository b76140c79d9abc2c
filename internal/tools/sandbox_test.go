package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/reasonpy/reasonpy/internal/sandbox"
)

// stubRuntime is a minimal sandbox backend for tool tests.
type stubRuntime struct {
	installStdout string
	codeOutput    string
	codeErrText   string
	closed        bool
}

func (s *stubRuntime) RunCommand(ctx context.Context, command string) (string, string, int, error) {
	return s.installStdout, "", 0, nil
}

func (s *stubRuntime) RunCode(ctx context.Context, code string) (string, string, error) {
	return s.codeOutput, s.codeErrText, nil
}

func (s *stubRuntime) Close() error {
	s.closed = true
	return nil
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		res  *sandbox.ExecResult
		want string
	}{
		{
			name: "all sections",
			res: &sandbox.ExecResult{
				Stdout:        "42",
				InstallOutput: "Successfully installed pandas",
				Error:         "DeprecationWarning",
			},
			want: "Package installation output:\nSuccessfully installed pandas\n\n" +
				"Code execution output:\n42\n\n" +
				"Error:\nDeprecationWarning",
		},
		{
			name: "output only",
			res:  &sandbox.ExecResult{Stdout: "hello", Success: true},
			want: "Code execution output:\nhello",
		},
		{
			name: "error only",
			res:  &sandbox.ExecResult{Error: "NameError"},
			want: "Error:\nNameError",
		},
		{
			name: "empty result",
			res:  &sandbox.ExecResult{Success: true},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResult(tt.res); got != tt.want {
				t.Errorf("FormatResult() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstallAndRunPython(t *testing.T) {
	rt := &stubRuntime{installStdout: "Successfully installed pandas", codeOutput: "ok"}
	tool := NewInstallAndRunPythonTool(sandbox.NewSessionWithRuntime(rt))

	out, err := tool.Execute(context.Background(), map[string]interface{}{
		"package_name": "pandas",
		"code":         "import pandas",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "Package installation output:\nSuccessfully installed pandas") {
		t.Errorf("missing install section: %q", out)
	}
	if !strings.Contains(out, "Code execution output:\nok") {
		t.Errorf("missing execution section: %q", out)
	}
}

func TestInstallAndRunPythonUnavailableSandbox(t *testing.T) {
	cfg := sandbox.DefaultConfig()
	cfg.APIKey = ""
	tool := NewInstallAndRunPythonTool(sandbox.NewSession(cfg))

	out, err := tool.Execute(context.Background(), map[string]interface{}{
		"package_name": "none",
		"code":         "print(1)",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, sandbox.ErrMsgUnavailable) {
		t.Errorf("expected the fixed unavailable message, got %q", out)
	}
}

func TestInstallAndRunPythonRequiresCode(t *testing.T) {
	tool := NewInstallAndRunPythonTool(sandbox.NewSessionWithRuntime(&stubRuntime{}))

	if _, err := tool.Execute(context.Background(), map[string]interface{}{"package_name": "none"}); err == nil {
		t.Error("expected an error for missing code parameter")
	}
	if _, err := tool.Execute(context.Background(), map[string]interface{}{
		"package_name": "none",
		"code":         "  ",
	}); err == nil {
		t.Error("expected an error for blank code")
	}
}

func TestCleanupSandbox(t *testing.T) {
	rt := &stubRuntime{}
	sess := sandbox.NewSessionWithRuntime(rt)
	tool := NewCleanupSandboxTool(sess)

	out, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "cleaned up") {
		t.Errorf("unexpected cleanup message %q", out)
	}
	if !rt.closed {
		t.Error("sandbox runtime should be closed")
	}

	// Cleaning up twice is fine.
	if _, err := tool.Execute(context.Background(), nil); err != nil {
		t.Fatalf("second cleanup failed: %v", err)
	}
}
