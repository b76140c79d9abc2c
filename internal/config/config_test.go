package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Agent.Model != "gpt-4o-mini" {
		t.Errorf("unexpected default model %q", cfg.Agent.Model)
	}
	if cfg.Agent.Temperature != 0 {
		t.Errorf("unexpected default temperature %v", cfg.Agent.Temperature)
	}
	if cfg.Sandbox.Backend != "remote" {
		t.Errorf("unexpected default sandbox backend %q", cfg.Sandbox.Backend)
	}
	if cfg.Tools.Search.MaxResults != 2 {
		t.Errorf("unexpected default max results %d", cfg.Tools.Search.MaxResults)
	}
	if cfg.Tools.Python.Bin != "python3" {
		t.Errorf("unexpected default python bin %q", cfg.Tools.Python.Bin)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Agent.Model != DefaultConfig().Agent.Model {
		t.Errorf("expected default model, got %q", cfg.Agent.Model)
	}
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"agent": {"model": "gpt-4o"}, "sandbox": {"apiKey": "sbx-key"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Agent.Model != "gpt-4o" {
		t.Errorf("file value should win, got %q", cfg.Agent.Model)
	}
	if cfg.Sandbox.APIKey != "sbx-key" {
		t.Errorf("sandbox key not loaded, got %q", cfg.Sandbox.APIKey)
	}
	// Unset fields keep their defaults.
	if cfg.Tools.Python.Bin != "python3" {
		t.Errorf("default python bin lost, got %q", cfg.Tools.Python.Bin)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("TAVILY_API_KEY", "env-tavily")
	t.Setenv("E2B_API_KEY", "env-e2b")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Providers.OpenAI.APIKey != "env-openai" {
		t.Errorf("OPENAI_API_KEY not applied, got %q", cfg.Providers.OpenAI.APIKey)
	}
	if cfg.Tools.Search.APIKey != "env-tavily" {
		t.Errorf("TAVILY_API_KEY not applied, got %q", cfg.Tools.Search.APIKey)
	}
	if cfg.Sandbox.APIKey != "env-e2b" {
		t.Errorf("E2B_API_KEY not applied, got %q", cfg.Sandbox.APIKey)
	}
}

func TestSaveAndReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Agent.Model = "gpt-4o"
	cfg.Sandbox.APIKey = "saved-key"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file should be 0600, got %o", perm)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Agent.Model != "gpt-4o" || loaded.Sandbox.APIKey != "saved-key" {
		t.Errorf("reloaded config lost values: %+v", loaded)
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath(""); got != "" {
		t.Errorf("expandPath('') = %q, want empty", got)
	}

	home, _ := os.UserHomeDir()
	if got := expandPath("~/test"); !strings.HasPrefix(got, home) {
		t.Errorf("expandPath('~/test') = %q, should be under home", got)
	}
	if got := expandPath("~"); got != home {
		t.Errorf("expandPath('~') = %q, want %q", got, home)
	}
	if got := expandPath("/tmp/test"); got != "/tmp/test" {
		t.Errorf("expandPath('/tmp/test') = %q", got)
	}
}

func TestArtifactsPath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ArtifactsPath(); !strings.HasSuffix(got, filepath.Join(".reasonpy", "artifacts")) {
		t.Errorf("unexpected artifacts path %q", got)
	}

	cfg.Tools.Python.ArtifactsDir = "/data/artifacts"
	if got := cfg.ArtifactsPath(); got != "/data/artifacts" {
		t.Errorf("absolute path should pass through, got %q", got)
	}
}
