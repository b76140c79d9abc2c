package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reasonpy/reasonpy/internal/pyexec"
)

// RunPythonTool executes Python code in the local persistent interpreter
// session. Variables defined in one call are visible in the next.
type RunPythonTool struct {
	BaseTool
	repl *pyexec.REPL
}

// NewRunPythonTool creates the run_python tool backed by the given session.
func NewRunPythonTool(repl *pyexec.REPL) *RunPythonTool {
	parameters := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Python code to execute. State persists between calls.",
			},
		},
		"required": []string{"code"},
	}

	return &RunPythonTool{
		BaseTool: NewBaseTool(
			"run_python",
			"Execute Python code in a persistent interpreter session and return its output. "+
				"Matplotlib figures are saved to the artifacts directory instead of being displayed.",
			parameters,
		),
		repl: repl,
	}
}

// Execute rewrites plotting calls for headless execution and runs the code.
func (t *RunPythonTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	code, err := GetStringParam(params, "code")
	if err != nil {
		return "", fmt.Errorf("run_python: %w", err)
	}
	if strings.TrimSpace(code) == "" {
		return "", errors.New("run_python: code cannot be empty")
	}

	code = pyexec.RewritePlotCalls(code, t.repl.PlotPath())
	return t.repl.Run(ctx, code), nil
}
