package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// dockerRuntime runs Python in a long-lived local container. It is an opt-in
// alternative to the remote service for users who have a Docker daemon but no
// sandbox API key. Interpreter state does not persist between RunCode calls;
// each call is a fresh python3 process inside the same container.
type dockerRuntime struct {
	cfg         Config
	client      *client.Client
	containerID string
}

func newDockerRuntime(cfg Config) (*dockerRuntime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	rt := &dockerRuntime{cfg: cfg, client: cli}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := cli.Ping(ctx); err != nil {
		cli.Close()
		return nil, fmt.Errorf("Docker daemon not reachable: %w", err)
	}

	if err := rt.start(ctx); err != nil {
		cli.Close()
		return nil, err
	}

	return rt, nil
}

// start pulls the image if needed and launches the container that all
// executions run in.
func (rt *dockerRuntime) start(ctx context.Context) error {
	if _, _, err := rt.client.ImageInspectWithRaw(ctx, rt.cfg.Image); err != nil {
		reader, err := rt.client.ImagePull(ctx, rt.cfg.Image, image.PullOptions{})
		if err != nil {
			return fmt.Errorf("failed to pull image %s: %w", rt.cfg.Image, err)
		}
		if _, err := io.Copy(io.Discard, reader); err != nil {
			reader.Close()
			return fmt.Errorf("failed to pull image %s: %w", rt.cfg.Image, err)
		}
		reader.Close()
	}

	containerCfg := &container.Config{
		Image:      rt.cfg.Image,
		WorkingDir: rt.cfg.WorkDir,
		Tty:        false,
		Cmd:        []string{"sleep", "infinity"},
	}

	hostCfg := &container.HostConfig{
		// pip install needs a writable filesystem; isolation comes from
		// capability drops and resource limits instead.
		CapDrop:     []string{"ALL"},
		SecurityOpt: []string{"no-new-privileges:true"},
		AutoRemove:  true,
		Resources: container.Resources{
			Memory:     rt.cfg.MemoryMB * 1024 * 1024,
			MemorySwap: rt.cfg.MemoryMB * 1024 * 1024,
			CPUQuota:   int64(rt.cfg.CPUPercent * 100000),
			CPUPeriod:  100000,
			PidsLimit:  &rt.cfg.PidsLimit,
		},
	}
	if !rt.cfg.NetworkEnabled {
		hostCfg.NetworkMode = "none"
	}

	resp, err := rt.client.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, "")
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	rt.containerID = resp.ID

	if err := rt.client.ContainerStart(ctx, rt.containerID, container.StartOptions{}); err != nil {
		_ = rt.client.ContainerRemove(ctx, rt.containerID, container.RemoveOptions{Force: true})
		rt.containerID = ""
		return fmt.Errorf("failed to start container: %w", err)
	}

	return nil
}

// RunCommand executes a shell command inside the container.
func (rt *dockerRuntime) RunCommand(ctx context.Context, command string) (string, string, int, error) {
	return rt.exec(ctx, []string{"sh", "-c", command})
}

// RunCode executes Python code inside the container. A Python exception shows
// up as errText via stderr and a non-zero exit code.
func (rt *dockerRuntime) RunCode(ctx context.Context, code string) (string, string, error) {
	stdout, stderr, exitCode, err := rt.exec(ctx, []string{"python3", "-c", code})
	if err != nil {
		return "", "", err
	}
	if exitCode != 0 {
		return stdout, stderr, nil
	}
	return stdout, "", nil
}

func (rt *dockerRuntime) exec(ctx context.Context, cmd []string) (string, string, int, error) {
	if rt.containerID == "" {
		return "", "", -1, fmt.Errorf("sandbox container is not running")
	}

	execCtx, cancel := context.WithTimeout(ctx, rt.cfg.Timeout)
	defer cancel()

	execResp, err := rt.client.ContainerExecCreate(execCtx, rt.containerID, container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
		WorkingDir:   rt.cfg.WorkDir,
	})
	if err != nil {
		return "", "", -1, fmt.Errorf("failed to create exec: %w", err)
	}

	attach, err := rt.client.ContainerExecAttach(execCtx, execResp.ID, container.ExecStartOptions{})
	if err != nil {
		return "", "", -1, fmt.Errorf("failed to attach to exec: %w", err)
	}
	defer attach.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, copyErr := stdcopy.StdCopy(&stdoutBuf, &stderrBuf, attach.Reader)
		done <- copyErr
	}()

	select {
	case err := <-done:
		if err != nil {
			return stdoutBuf.String(), stderrBuf.String(), -1, fmt.Errorf("failed to read output: %w", err)
		}
	case <-execCtx.Done():
		return stdoutBuf.String(), stderrBuf.String(), -1, fmt.Errorf("execution timed out after %v", rt.cfg.Timeout)
	}

	inspect, err := rt.client.ContainerExecInspect(execCtx, execResp.ID)
	if err != nil {
		return stdoutBuf.String(), stderrBuf.String(), -1, fmt.Errorf("failed to inspect exec: %w", err)
	}

	return stdoutBuf.String(), stderrBuf.String(), inspect.ExitCode, nil
}

// Close stops the container (AutoRemove cleans it up) and closes the client.
func (rt *dockerRuntime) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if rt.containerID != "" {
		timeout := 10
		if err := rt.client.ContainerStop(ctx, rt.containerID, container.StopOptions{Timeout: &timeout}); err != nil {
			_ = rt.client.ContainerRemove(ctx, rt.containerID, container.RemoveOptions{Force: true})
		}
		rt.containerID = ""
	}

	if err := rt.client.Close(); err != nil {
		return fmt.Errorf("failed to close Docker client: %w", err)
	}
	return nil
}
