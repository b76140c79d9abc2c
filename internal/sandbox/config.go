package sandbox

import "time"

// Backend selects how sandboxed execution is performed.
type Backend string

const (
	// BackendRemote uses the hosted sandbox service over HTTP.
	BackendRemote Backend = "remote"
	// BackendDocker runs a local Python container instead. Explicit opt-in:
	// without it, a missing API key means the sandbox is simply unavailable.
	BackendDocker Backend = "docker"
)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.e2b.dev"
	DefaultImage      = "python:3.12-slim"
	DefaultMemoryMB   = 512
	DefaultCPUPercent = 1.0
	DefaultPidsLimit  = 128
	DefaultWorkDir    = "/workspace"
	DefaultTimeout    = 120 * time.Second
)

// Config holds sandbox session configuration.
type Config struct {
	// Backend selects remote or docker execution. Default: remote.
	Backend Backend

	// APIKey authenticates against the remote sandbox service.
	APIKey string

	// BaseURL is the remote service endpoint. Overridable for tests.
	BaseURL string

	// Image is the container image for the docker backend.
	Image string

	// MemoryMB, CPUPercent and PidsLimit bound the docker container.
	MemoryMB   int64
	CPUPercent float64
	PidsLimit  int64

	// NetworkEnabled allows container network access. Default: true, since
	// package installation needs to reach the index.
	NetworkEnabled bool

	// WorkDir is the working directory inside the container.
	WorkDir string

	// Timeout bounds each install or execution call.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendRemote,
		BaseURL:        DefaultBaseURL,
		Image:          DefaultImage,
		MemoryMB:       DefaultMemoryMB,
		CPUPercent:     DefaultCPUPercent,
		PidsLimit:      DefaultPidsLimit,
		NetworkEnabled: true,
		WorkDir:        DefaultWorkDir,
		Timeout:        DefaultTimeout,
	}
}

// Validate applies defaults to unset fields.
func (c *Config) Validate() {
	if c.Backend == "" {
		c.Backend = BackendRemote
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Image == "" {
		c.Image = DefaultImage
	}
	if c.MemoryMB <= 0 {
		c.MemoryMB = DefaultMemoryMB
	}
	if c.CPUPercent <= 0 || c.CPUPercent > 1.0 {
		c.CPUPercent = DefaultCPUPercent
	}
	if c.PidsLimit <= 0 {
		c.PidsLimit = DefaultPidsLimit
	}
	if c.WorkDir == "" {
		c.WorkDir = DefaultWorkDir
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}
