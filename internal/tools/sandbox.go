package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reasonpy/reasonpy/internal/sandbox"
)

// FormatResult flattens an execution result into the text the agent reads.
// Only non-empty sections are included.
func FormatResult(res *sandbox.ExecResult) string {
	var parts []string

	if res.InstallOutput != "" {
		parts = append(parts, "Package installation output:\n"+res.InstallOutput)
	}
	if res.Stdout != "" {
		parts = append(parts, "Code execution output:\n"+res.Stdout)
	}
	if res.Error != "" {
		parts = append(parts, "Error:\n"+res.Error)
	}

	return strings.Join(parts, "\n\n")
}

// InstallAndRunPythonTool executes Python code in the sandbox session,
// optionally installing packages first.
type InstallAndRunPythonTool struct {
	BaseTool
	session *sandbox.Session
}

// NewInstallAndRunPythonTool creates the install_and_run_python tool backed by
// the given sandbox session.
func NewInstallAndRunPythonTool(session *sandbox.Session) *InstallAndRunPythonTool {
	parameters := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"package_name": map[string]interface{}{
				"type":        "string",
				"description": "Package(s) to install before execution, space separated. Use \"none\" if no installation is needed.",
			},
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Python code to execute in the sandbox.",
			},
		},
		"required": []string{"package_name", "code"},
	}

	return &InstallAndRunPythonTool{
		BaseTool: NewBaseTool(
			"install_and_run_python",
			"Install a package (if needed) and run Python code in an isolated sandbox. "+
				"The sandbox keeps state between executions: variables and installed packages remain available.",
			parameters,
		),
		session: session,
	}
}

// Execute installs the requested packages and runs the code. Sandbox failures
// come back as part of the formatted result, not as an error: the agent is
// expected to read them and react.
func (t *InstallAndRunPythonTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	code, err := GetStringParam(params, "code")
	if err != nil {
		return "", fmt.Errorf("install_and_run_python: %w", err)
	}
	if strings.TrimSpace(code) == "" {
		return "", errors.New("install_and_run_python: code cannot be empty")
	}

	packages := GetStringParamOr(params, "package_name", "none")

	res := t.session.Execute(ctx, code, packages)
	return FormatResult(res), nil
}

// CleanupSandboxTool lets the agent release the sandbox explicitly when it is
// done executing code. The CLI still closes the session at process exit, so
// skipping this tool only delays the teardown.
type CleanupSandboxTool struct {
	BaseTool
	session *sandbox.Session
}

// NewCleanupSandboxTool creates the cleanup_sandbox tool backed by the given
// sandbox session.
func NewCleanupSandboxTool(session *sandbox.Session) *CleanupSandboxTool {
	parameters := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}

	return &CleanupSandboxTool{
		BaseTool: NewBaseTool(
			"cleanup_sandbox",
			"Clean up and kill the sandbox to release resources. Call this when you are done executing code.",
			parameters,
		),
		session: session,
	}
}

// Execute closes the sandbox session.
func (t *CleanupSandboxTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	if err := t.session.Close(); err != nil {
		return fmt.Sprintf("Error during sandbox cleanup: %v", err), nil
	}
	return "Sandbox has been successfully cleaned up and resources released.", nil
}
