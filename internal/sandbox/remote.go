package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// remoteRuntime talks to an E2B-style sandbox service over HTTP: one session
// is created up front and all command/code execution happens inside it until
// the session is killed.
type remoteRuntime struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	sandboxID string
	timeout   time.Duration
}

type createSandboxResponse struct {
	SandboxID string `json:"sandboxID"`
}

type runCommandRequest struct {
	Command string `json:"command"`
}

type runCommandResponse struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

type runCodeRequest struct {
	Code string `json:"code"`
}

type runCodeResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// newRemoteRuntime creates the remote session immediately so that a bad key
// or unreachable service surfaces at startup rather than mid-conversation.
func newRemoteRuntime(cfg Config) (*remoteRuntime, error) {
	rt := &remoteRuntime{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		client:  &http.Client{Timeout: cfg.Timeout},
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var created createSandboxResponse
	if err := rt.do(ctx, http.MethodPost, "/sandboxes", nil, &created); err != nil {
		return nil, fmt.Errorf("failed to create sandbox: %w", err)
	}
	if created.SandboxID == "" {
		return nil, fmt.Errorf("sandbox service returned an empty session ID")
	}
	rt.sandboxID = created.SandboxID

	return rt, nil
}

// RunCommand executes a shell command in the remote session.
func (rt *remoteRuntime) RunCommand(ctx context.Context, command string) (string, string, int, error) {
	var resp runCommandResponse
	path := fmt.Sprintf("/sandboxes/%s/commands", rt.sandboxID)
	if err := rt.do(ctx, http.MethodPost, path, runCommandRequest{Command: command}, &resp); err != nil {
		return "", "", -1, err
	}
	return resp.Stdout, resp.Stderr, resp.ExitCode, nil
}

// RunCode executes Python code in the remote session's interpreter. Remote
// interpreter state persists between calls for the lifetime of the session.
func (rt *remoteRuntime) RunCode(ctx context.Context, code string) (string, string, error) {
	var resp runCodeResponse
	path := fmt.Sprintf("/sandboxes/%s/code", rt.sandboxID)
	if err := rt.do(ctx, http.MethodPost, path, runCodeRequest{Code: code}, &resp); err != nil {
		return "", "", err
	}
	return resp.Text, resp.Error, nil
}

// Close kills the remote session.
func (rt *remoteRuntime) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), rt.timeout)
	defer cancel()

	path := fmt.Sprintf("/sandboxes/%s", rt.sandboxID)
	if err := rt.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to kill sandbox: %w", err)
	}
	return nil
}

// do performs one API call, encoding the request body and decoding the
// response into out (when non-nil).
func (rt *remoteRuntime) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rt.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", rt.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := rt.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sandbox API returned status %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
