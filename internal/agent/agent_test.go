package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/nexxia-ai/aigentic/ai"

	"github.com/reasonpy/reasonpy/internal/config"
	"github.com/reasonpy/reasonpy/internal/sandbox"
)

type noopRuntime struct{}

func (noopRuntime) RunCommand(ctx context.Context, command string) (string, string, int, error) {
	return "", "", 0, nil
}

func (noopRuntime) RunCode(ctx context.Context, code string) (string, string, error) {
	return "", "", nil
}

func (noopRuntime) Close() error { return nil }

func scriptedModel(reply string) *ai.Model {
	return ai.NewDummyModel(func(messages []ai.Message, tools []ai.Tool) ai.AIMessage {
		return ai.AIMessage{
			Role:    ai.AssistantRole,
			Content: reply,
		}
	})
}

func TestBuildRequiresProviderKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Providers.OpenAI.APIKey = ""

	_, err := Build(context.Background(), cfg, EnvSandbox, Deps{
		Session: sandbox.NewSessionWithRuntime(noopRuntime{}),
	})
	if err == nil {
		t.Fatal("expected an error without a provider key")
	}
	if !strings.Contains(err.Error(), "no LLM provider configured") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestBuildSandboxToolSet(t *testing.T) {
	a, err := BuildWithModel(context.Background(), scriptedModel("ok"), EnvSandbox, Deps{
		Session:      sandbox.NewSessionWithRuntime(noopRuntime{}),
		SearchAPIKey: "tavily-key",
	})
	if err != nil {
		t.Fatalf("BuildWithModel failed: %v", err)
	}

	names := a.Tools()
	want := []string{"cleanup_sandbox", "install_and_run_python", "web_fetch", "web_search"}
	if len(names) != len(want) {
		t.Fatalf("expected tools %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tool %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestBuildSandboxWithoutSearchKey(t *testing.T) {
	a, err := BuildWithModel(context.Background(), scriptedModel("ok"), EnvSandbox, Deps{
		Session: sandbox.NewSessionWithRuntime(noopRuntime{}),
	})
	if err != nil {
		t.Fatalf("BuildWithModel failed: %v", err)
	}

	for _, name := range a.Tools() {
		if name == "web_search" || name == "web_fetch" {
			t.Errorf("web tools should not be registered without a search key, got %v", a.Tools())
		}
	}
}

func TestBuildLocalRequiresREPL(t *testing.T) {
	if _, err := BuildWithModel(context.Background(), scriptedModel("ok"), EnvLocal, Deps{}); err == nil {
		t.Error("expected an error for a missing interpreter session")
	}
}

func TestBuildSandboxRequiresSession(t *testing.T) {
	if _, err := BuildWithModel(context.Background(), scriptedModel("ok"), EnvSandbox, Deps{}); err == nil {
		t.Error("expected an error for a missing sandbox session")
	}
}

func TestBuildUnknownEnvironment(t *testing.T) {
	if _, err := BuildWithModel(context.Background(), scriptedModel("ok"), Environment("cloud"), Deps{}); err == nil {
		t.Error("expected an error for an unknown environment")
	}
}

func TestInvoke(t *testing.T) {
	a, err := BuildWithModel(context.Background(), scriptedModel("the answer is 4"), EnvSandbox, Deps{
		Session: sandbox.NewSessionWithRuntime(noopRuntime{}),
	})
	if err != nil {
		t.Fatalf("BuildWithModel failed: %v", err)
	}

	out, err := a.Invoke("what is 2+2?")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if out != "the answer is 4" {
		t.Errorf("unexpected answer %q", out)
	}

	if _, err := a.Invoke(""); err == nil {
		t.Error("expected an error for an empty query")
	}
}
