package sandbox

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRuntime records calls and returns scripted results.
type fakeRuntime struct {
	commands []string
	code     []string

	commandStdout string
	commandStderr string
	commandErr    error

	codeOutput  string
	codeErrText string
	codeErr     error

	closeCount int
}

func (f *fakeRuntime) RunCommand(ctx context.Context, command string) (string, string, int, error) {
	f.commands = append(f.commands, command)
	if f.commandErr != nil {
		return f.commandStdout, f.commandStderr, -1, f.commandErr
	}
	return f.commandStdout, f.commandStderr, 0, nil
}

func (f *fakeRuntime) RunCode(ctx context.Context, code string) (string, string, error) {
	f.code = append(f.code, code)
	return f.codeOutput, f.codeErrText, f.codeErr
}

func (f *fakeRuntime) Close() error {
	f.closeCount++
	return nil
}

func TestSessionUnavailableWithoutCredential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = ""
	sess := NewSession(cfg)

	if sess.Available() {
		t.Fatal("session without an API key should not be available")
	}

	// Every call reports the same fixed message.
	for i := 0; i < 3; i++ {
		res := sess.Execute(context.Background(), "print(1)", "none")
		if res.Success {
			t.Fatal("execution should fail on an unavailable session")
		}
		if res.Error != ErrMsgUnavailable {
			t.Fatalf("expected fixed unavailable message, got %q", res.Error)
		}
	}
}

func TestSessionExecuteSuccess(t *testing.T) {
	rt := &fakeRuntime{codeOutput: "hello\n"}
	sess := NewSessionWithRuntime(rt)

	res := sess.Execute(context.Background(), "print('hello')", "none")
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Stdout != "hello\n" {
		t.Errorf("unexpected stdout %q", res.Stdout)
	}
	if res.InstallOutput != "" {
		t.Errorf("no install requested, got install output %q", res.InstallOutput)
	}
	if len(rt.commands) != 0 {
		t.Errorf("no command should run for package spec \"none\", got %v", rt.commands)
	}
}

func TestSessionInstallRunsBeforeCode(t *testing.T) {
	rt := &fakeRuntime{commandStdout: "Successfully installed pandas", codeOutput: "ok"}
	sess := NewSessionWithRuntime(rt)

	res := sess.Execute(context.Background(), "import pandas", "pandas")
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if len(rt.commands) != 1 || rt.commands[0] != "pip install pandas" {
		t.Errorf("unexpected install commands %v", rt.commands)
	}
	if !strings.Contains(res.InstallOutput, "Successfully installed pandas") {
		t.Errorf("install output missing: %q", res.InstallOutput)
	}
}

func TestSessionInstallFailureDoesNotAbortExecution(t *testing.T) {
	rt := &fakeRuntime{
		commandStderr: "ERROR: no matching distribution",
		commandErr:    errors.New("exit status 1"),
		codeOutput:    "ran anyway",
	}
	sess := NewSessionWithRuntime(rt)

	res := sess.Execute(context.Background(), "print('ran anyway')", "nosuchpackage")
	if !res.Success {
		t.Fatalf("code execution should still succeed, got error %q", res.Error)
	}
	if res.Stdout != "ran anyway" {
		t.Errorf("code should have run after install failure, got %q", res.Stdout)
	}
	if !strings.Contains(res.InstallOutput, "no matching distribution") {
		t.Errorf("install failure should be reported in InstallOutput, got %q", res.InstallOutput)
	}
	if len(rt.code) != 1 {
		t.Errorf("expected exactly one code execution, got %d", len(rt.code))
	}
}

func TestSessionPythonErrorReported(t *testing.T) {
	rt := &fakeRuntime{codeErrText: "NameError: name 'x' is not defined"}
	sess := NewSessionWithRuntime(rt)

	res := sess.Execute(context.Background(), "print(x)", "")
	if res.Success {
		t.Fatal("a Python error should mark the result unsuccessful")
	}
	if !strings.Contains(res.Error, "NameError") {
		t.Errorf("expected the Python error, got %q", res.Error)
	}
}

func TestSessionTransportErrorConverted(t *testing.T) {
	rt := &fakeRuntime{codeErr: errors.New("connection reset")}
	sess := NewSessionWithRuntime(rt)

	res := sess.Execute(context.Background(), "print(1)", "none")
	if res.Success {
		t.Fatal("transport errors should mark the result unsuccessful")
	}
	if !strings.Contains(res.Error, "connection reset") {
		t.Errorf("expected the transport error, got %q", res.Error)
	}
}

func TestSessionBlockedInstallSpec(t *testing.T) {
	rt := &fakeRuntime{}
	sess := NewSessionWithRuntime(rt)

	res := sess.Execute(context.Background(), "print(1)", "pandas; rm -rf /")
	if res.Success {
		t.Fatal("a blocked install spec should fail")
	}
	if !strings.Contains(res.Error, "blocked") {
		t.Errorf("expected a blocked message, got %q", res.Error)
	}
	if len(rt.commands) != 0 || len(rt.code) != 0 {
		t.Error("nothing should execute after a blocked install spec")
	}
}

func TestSessionCloseOnce(t *testing.T) {
	rt := &fakeRuntime{}
	sess := NewSessionWithRuntime(rt)

	if err := sess.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if rt.closeCount != 1 {
		t.Errorf("runtime should be closed exactly once, got %d", rt.closeCount)
	}

	res := sess.Execute(context.Background(), "print(1)", "none")
	if res.Success || res.Error != ErrMsgUnavailable {
		t.Errorf("execution after Close should report the unavailable message, got %+v", res)
	}
}
