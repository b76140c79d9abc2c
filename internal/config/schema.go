// Package config defines the reasonpy configuration schema and file handling.
package config

import (
	"os"
	"path/filepath"
)

// Config represents the root configuration structure for reasonpy.
type Config struct {
	Agent     AgentConfig     `json:"agent"`
	Providers ProvidersConfig `json:"providers"`
	Tools     ToolsConfig     `json:"tools"`
	Sandbox   SandboxConfig   `json:"sandbox"`
}

// AgentConfig holds model selection and generation settings.
type AgentConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

// ProvidersConfig holds LLM provider configurations.
type ProvidersConfig struct {
	OpenAI ProviderConfig `json:"openai"`
}

// ProviderConfig represents a standard LLM provider configuration.
type ProviderConfig struct {
	APIKey  string `json:"apiKey"`
	APIBase string `json:"apiBase,omitempty"`
}

// ToolsConfig holds tool-related configurations.
type ToolsConfig struct {
	Search SearchConfig `json:"search"`
	Python PythonConfig `json:"python"`
}

// SearchConfig represents web search tool configuration.
type SearchConfig struct {
	APIKey     string `json:"apiKey"`
	MaxResults int    `json:"maxResults"`
}

// PythonConfig represents the local Python interpreter configuration.
type PythonConfig struct {
	Bin            string `json:"bin"`
	ArtifactsDir   string `json:"artifactsDir"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// SandboxConfig represents the sandboxed execution configuration.
type SandboxConfig struct {
	// Backend selects "remote" or "docker". Remote is the default and
	// requires an API key; docker runs a local container instead.
	Backend        string `json:"backend"`
	APIKey         string `json:"apiKey"`
	BaseURL        string `json:"baseUrl,omitempty"`
	Image          string `json:"image,omitempty"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// DefaultConfig returns a new Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0,
		},
		Providers: ProvidersConfig{
			OpenAI: ProviderConfig{
				APIKey:  "",
				APIBase: "https://api.openai.com/v1",
			},
		},
		Tools: ToolsConfig{
			Search: SearchConfig{
				APIKey:     "",
				MaxResults: 2,
			},
			Python: PythonConfig{
				Bin:            "python3",
				ArtifactsDir:   "~/.reasonpy/artifacts",
				TimeoutSeconds: 60,
			},
		},
		Sandbox: SandboxConfig{
			Backend:        "remote",
			APIKey:         "",
			TimeoutSeconds: 120,
		},
	}
}

// ApplyEnvOverrides overlays well-known environment variables on top of the
// file configuration. Environment variables always win.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Providers.OpenAI.APIKey = key
	}
	if key := os.Getenv("TAVILY_API_KEY"); key != "" {
		c.Tools.Search.APIKey = key
	}
	if key := os.Getenv("E2B_API_KEY"); key != "" {
		c.Sandbox.APIKey = key
	}
}

// ArtifactsPath returns the expanded artifacts directory path.
func (c *Config) ArtifactsPath() string {
	dir := c.Tools.Python.ArtifactsDir
	if dir == "" {
		dir = "~/.reasonpy/artifacts"
	}
	return expandPath(dir)
}

// expandPath expands ~ to the user's home directory and resolves the path.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if len(path) == 1 {
			return home
		}
		if path[1] == '/' || path[1] == filepath.Separator {
			path = filepath.Join(home, path[2:])
		} else {
			path = filepath.Join(home, path[1:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
