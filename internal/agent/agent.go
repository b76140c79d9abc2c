// Package agent assembles the Python execution agent: model, prompt, and
// tools, on top of the aigentic framework.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexxia-ai/aigentic"
	"github.com/nexxia-ai/aigentic/ai"
	"github.com/nexxia-ai/aigentic/ai/openai"

	"github.com/reasonpy/reasonpy/internal/config"
	"github.com/reasonpy/reasonpy/internal/pyexec"
	"github.com/reasonpy/reasonpy/internal/sandbox"
	"github.com/reasonpy/reasonpy/internal/tools"
)

// Environment selects where the agent's Python code runs.
type Environment string

const (
	// EnvLocal runs code in the local persistent interpreter.
	EnvLocal Environment = "local"
	// EnvSandbox runs code in the isolated sandbox session.
	EnvSandbox Environment = "sandbox"
)

// Deps carries the execution backends and tool settings the agent needs.
// The REPL is required for EnvLocal, the Session for EnvSandbox.
type Deps struct {
	REPL    *pyexec.REPL
	Session *sandbox.Session

	SearchAPIKey     string
	MaxSearchResults int
}

// Agent is a configured Python execution agent.
type Agent struct {
	inner *aigentic.Agent
}

// Build creates an agent from the configuration, using the OpenAI-compatible
// provider it names.
func Build(ctx context.Context, cfg *config.Config, env Environment, deps Deps) (*Agent, error) {
	apiKey := cfg.Providers.OpenAI.APIKey
	if apiKey == "" {
		return nil, errors.New("no LLM provider configured: set OPENAI_API_KEY or run 'reasonpy setup'")
	}

	model := openai.NewModel(cfg.Agent.Model, apiKey, cfg.Providers.OpenAI.APIBase)
	return BuildWithModel(ctx, model, env, deps)
}

// BuildWithModel creates an agent around an existing model. Split out from
// Build so tests can substitute a scripted model.
func BuildWithModel(ctx context.Context, model *ai.Model, env Environment, deps Deps) (*Agent, error) {
	reg := tools.NewRegistry()

	var instructions string
	switch env {
	case EnvLocal:
		if deps.REPL == nil {
			return nil, errors.New("local environment requires an interpreter session")
		}
		reg.MustRegister(tools.NewRunPythonTool(deps.REPL))
		instructions = localSystemPrompt
	case EnvSandbox:
		if deps.Session == nil {
			return nil, errors.New("sandbox environment requires a sandbox session")
		}
		reg.MustRegister(tools.NewInstallAndRunPythonTool(deps.Session))
		reg.MustRegister(tools.NewCleanupSandboxTool(deps.Session))
		instructions = sandboxSystemPrompt
	default:
		return nil, fmt.Errorf("unknown environment %q", env)
	}

	if deps.SearchAPIKey != "" {
		reg.MustRegister(tools.NewWebSearchTool(deps.SearchAPIKey, deps.MaxSearchResults))
		reg.MustRegister(tools.NewWebFetchTool(0))
	}

	inner := &aigentic.Agent{
		Model:        model,
		Name:         "reasonpy",
		Description:  "A Python execution agent that writes and runs code to answer questions.",
		Instructions: instructions,
		Session:      aigentic.NewSession(ctx),
		Tools:        reg.ToAgentTools(ctx),
	}

	return &Agent{inner: inner}, nil
}

// Tools returns the names of the tools the agent carries.
func (a *Agent) Tools() []string {
	names := make([]string, 0, len(a.inner.Tools))
	for _, t := range a.inner.Tools {
		names = append(names, t.Name)
	}
	return names
}

// Invoke sends a query through the agent's reasoning loop and returns the
// final answer. The loop itself (tool selection, iteration, memory) is owned
// by the framework.
func (a *Agent) Invoke(query string) (string, error) {
	if query == "" {
		return "", errors.New("query cannot be empty")
	}
	return a.inner.RunAndWait(query)
}
