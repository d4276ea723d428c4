package docker

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/oklog/ulid/v2"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/Navteca/cline/internal/host"
	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
)

// DockerClient is the interface for Docker operations that we use.
// This allows us to mock the Docker client for testing.
type DockerClient interface {
	ImagePull(ctx context.Context, refStr string, options image.PullOptions) (io.ReadCloser, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
}

const defaultImage = "python:3.12-slim"

// ProviderConfig is the configuration for the Docker host provider.
type ProviderConfig struct {
	Client DockerClient
	// Image is the container image the workspace runs in.
	Image string
	// WorkspaceDir is the workspace path inside the container.
	WorkspaceDir string
	// ContainerName pins the container name. Defaults to a generated one.
	ContainerName string
	Logger        log.Logger
}

func (c *ProviderConfig) defaults() error {
	if c.Client == nil {
		cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			return fmt.Errorf("could not create Docker client: %w", err)
		}
		c.Client = cli
	}
	if c.Image == "" {
		c.Image = defaultImage
	}
	if c.WorkspaceDir == "" {
		c.WorkspaceDir = "/workspace"
	}
	if c.ContainerName == "" {
		id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
		c.ContainerName = fmt.Sprintf("cline-%s", strings.ToLower(id))
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "docker.Provider"})
	return nil
}

// Provider implements the host capabilities inside a Docker container: file
// and command operations run through `docker exec` against a long-lived
// workspace container. There is no editor surface, so document, cell and
// selection lookups always report absence.
type Provider struct {
	client        DockerClient
	image         string
	workspaceDir  string
	containerName string
	logger        log.Logger
}

var _ host.Provider = &Provider{}

// NewProvider creates a new Docker host provider. The workspace container
// is not created until Setup is called.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Provider{
		client:        cfg.Client,
		image:         cfg.Image,
		workspaceDir:  cfg.WorkspaceDir,
		containerName: cfg.ContainerName,
		logger:        cfg.Logger,
	}, nil
}

// Setup pulls the image and creates and starts the workspace container.
func (p *Provider) Setup(ctx context.Context) error {
	p.logger.Infof("[1/3] Pulling image: %s", p.image)
	pullResp, err := p.client.ImagePull(ctx, p.image, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("could not pull image %s: %w", p.image, err)
	}
	// Consume the pull response to ensure it completes.
	_, _ = io.Copy(io.Discard, pullResp)
	pullResp.Close()

	p.logger.Infof("[2/3] Creating container: %s", p.containerName)
	containerConfig := &container.Config{
		Image:      p.image,
		WorkingDir: p.workspaceDir,
		Cmd:        []string{"tail", "-f", "/dev/null"}, // Keep container running
	}
	resp, err := p.client.ContainerCreate(ctx, containerConfig, &container.HostConfig{}, nil, nil, p.containerName)
	if err != nil {
		if !strings.Contains(err.Error(), "is already in use") {
			return fmt.Errorf("could not create container: %w", err)
		}
		p.logger.Debugf("Container %s already exists", p.containerName)
	} else {
		p.logger.Debugf("Created container %s", resp.ID)
	}

	p.logger.Infof("[3/3] Starting container: %s", p.containerName)
	if err := p.client.ContainerStart(ctx, p.containerName, container.StartOptions{}); err != nil {
		if !strings.Contains(err.Error(), "already started") && !strings.Contains(err.Error(), "is already running") {
			return fmt.Errorf("could not start container %s: %w", p.containerName, err)
		}
	}

	if _, err := p.execOutput(ctx, []string{"mkdir", "-p", p.workspaceDir}); err != nil {
		return fmt.Errorf("could not create workspace directory: %w", err)
	}

	p.logger.Infof("Workspace container %s ready", p.containerName)
	return nil
}

// Teardown stops and removes the workspace container. It is idempotent,
// tearing down a missing container is not an error.
func (p *Provider) Teardown(ctx context.Context) error {
	p.logger.Infof("Stopping container: %s", p.containerName)
	timeout := 10
	if err := p.client.ContainerStop(ctx, p.containerName, container.StopOptions{Timeout: &timeout}); err != nil {
		if !strings.Contains(err.Error(), "is already stopped") &&
			!strings.Contains(err.Error(), "is not running") &&
			!strings.Contains(err.Error(), "No such container") {
			return fmt.Errorf("could not stop container %s: %w", p.containerName, err)
		}
	}

	p.logger.Infof("Removing container: %s", p.containerName)
	if err := p.client.ContainerRemove(ctx, p.containerName, container.RemoveOptions{Force: true}); err != nil {
		if !strings.Contains(err.Error(), "No such container") {
			return fmt.Errorf("could not remove container %s: %w", p.containerName, err)
		}
	}

	return nil
}

func (p *Provider) Check(ctx context.Context) []model.CheckResult {
	results := []model.CheckResult{}

	info, err := p.client.ContainerInspect(ctx, p.containerName)
	switch {
	case err != nil:
		results = append(results, model.CheckResult{
			ID:      "container_running",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("container %q not found, run setup first", p.containerName),
		})
	case info.State == nil || info.State.Status != "running":
		results = append(results, model.CheckResult{
			ID:      "container_running",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("container %q is not running", p.containerName),
		})
	default:
		results = append(results, model.CheckResult{
			ID:      "container_running",
			Status:  model.CheckStatusOK,
			Message: fmt.Sprintf("container %q is running", p.containerName),
		})
	}

	if _, err := exec.LookPath("docker"); err != nil {
		results = append(results, model.CheckResult{
			ID:      "docker_cli_available",
			Status:  model.CheckStatusError,
			Message: "docker CLI not found in PATH",
		})
	} else {
		results = append(results, model.CheckResult{
			ID:      "docker_cli_available",
			Status:  model.CheckStatusOK,
			Message: "docker CLI found in PATH",
		})
	}

	return results
}

func (p *Provider) ReadFile(ctx context.Context, path string) (string, error) {
	result, err := p.execResult(ctx, []string{"cat", p.resolve(path)}, nil)
	if err != nil {
		return "", model.NewFileOperationError("read", path, err)
	}
	if result.ExitCode != 0 {
		return "", model.NewFileOperationError("read", path, fmt.Errorf("%s", strings.TrimSpace(result.Stderr)))
	}
	return result.Stdout, nil
}

func (p *Provider) WriteFile(ctx context.Context, path string, content string) error {
	command := []string{"sh", "-c", fmt.Sprintf("cat > %s", shellQuote(p.resolve(path)))}
	result, err := p.execResult(ctx, command, strings.NewReader(content))
	if err != nil {
		return model.NewFileOperationError("write", path, err)
	}
	if result.ExitCode != 0 {
		return model.NewFileOperationError("write", path, fmt.Errorf("%s", strings.TrimSpace(result.Stderr)))
	}
	return nil
}

func (p *Provider) ListFiles(ctx context.Context, dir string) ([]string, error) {
	result, err := p.execResult(ctx, []string{"ls", "-1", p.resolve(dir)}, nil)
	if err != nil {
		return nil, model.NewFileOperationError("list", dir, err)
	}
	if result.ExitCode != 0 {
		return nil, model.NewFileOperationError("list", dir, fmt.Errorf("%s", strings.TrimSpace(result.Stderr)))
	}

	names := []string{}
	for _, line := range strings.Split(result.Stdout, "\n") {
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

func (p *Provider) ShowMessage(ctx context.Context, text string, severity host.Severity) {
	logger := p.logger.WithCtxValues(ctx)
	switch severity {
	case host.SeverityWarning:
		logger.Warningf("%s", text)
	case host.SeverityError:
		logger.Errorf("%s", text)
	default:
		logger.Infof("%s", text)
	}
}

func (p *Provider) ShowProgress(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	logger := p.logger.WithCtxValues(ctx)
	logger.Infof("%s...", title)
	if err := fn(ctx); err != nil {
		logger.Errorf("%s failed: %s", title, err)
		return err
	}
	logger.Infof("%s done", title)
	return nil
}

func (p *Provider) ExecuteCommand(ctx context.Context, command []string) (*model.ExecResult, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty command: %w", model.ErrNotValid)
	}
	return p.execResult(ctx, command, nil)
}

func (p *Provider) CurrentWorkspace() string {
	return p.workspaceDir
}

func (p *Provider) ActiveDocument(ctx context.Context) (*model.Document, error) {
	return nil, fmt.Errorf("container host has no editor surface: %w", model.ErrNotFound)
}

func (p *Provider) ActiveCell(ctx context.Context) (*model.NotebookCell, error) {
	return nil, fmt.Errorf("container host has no editor surface: %w", model.ErrNotFound)
}

func (p *Provider) SelectedText(ctx context.Context) (string, error) {
	return "", fmt.Errorf("container host has no editor surface: %w", model.ErrNotFound)
}

// execResult runs a command in the workspace container through the docker
// CLI. A non-zero exit code is reported in the result, not as an error.
func (p *Provider) execResult(ctx context.Context, command []string, stdin io.Reader) (*model.ExecResult, error) {
	args := []string{"exec", "-w", p.workspaceDir}
	if stdin != nil {
		args = append(args, "-i")
	}
	args = append(args, p.containerName)
	args = append(args, command...)

	p.logger.Debugf("Executing in container %s: docker %v", p.containerName, args)

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &model.ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if strings.Contains(err.Error(), "No such container") {
			return nil, fmt.Errorf("container %s: %w", p.containerName, model.ErrNotFound)
		}
		if strings.Contains(err.Error(), "is not running") {
			return nil, fmt.Errorf("container %s is not running: %w", p.containerName, model.ErrNotValid)
		}
		return nil, fmt.Errorf("could not execute command: %w", err)
	}

	return result, nil
}

func (p *Provider) execOutput(ctx context.Context, command []string) (string, error) {
	result, err := p.execResult(ctx, command, nil)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("command %v failed with code %d: %s", command, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return result.Stdout, nil
}

func (p *Provider) resolve(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return p.workspaceDir + "/" + path
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
