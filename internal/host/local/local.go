package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Navteca/cline/internal/host"
	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
	"github.com/Navteca/cline/internal/notebook"
)

// ProviderConfig is the configuration for the local host provider.
type ProviderConfig struct {
	// WorkspaceDir is the workspace root. Defaults to the current directory.
	WorkspaceDir string
	// NotebookPath is the notebook acting as the active document. Empty
	// means no document is focused.
	NotebookPath string
	// CellIndex selects the active cell of the notebook. Negative means no
	// cell is selected.
	CellIndex int
	// Selection is the current text selection. Empty means no selection.
	Selection string
	Logger    log.Logger
}

func (c *ProviderConfig) defaults() error {
	if c.WorkspaceDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("could not get working directory: %w", err)
		}
		c.WorkspaceDir = wd
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "local.Provider"})
	return nil
}

// Provider implements the host capabilities on the local machine: plain
// filesystem access, OS process execution and log-backed notifications.
type Provider struct {
	workspaceDir string
	notebookPath string
	cellIndex    int
	selection    string
	logger       log.Logger
}

var _ host.Provider = &Provider{}

// NewProvider creates a new local host provider.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Provider{
		workspaceDir: cfg.WorkspaceDir,
		notebookPath: cfg.NotebookPath,
		cellIndex:    cfg.CellIndex,
		selection:    cfg.Selection,
		logger:       cfg.Logger,
	}, nil
}

func (p *Provider) Check(ctx context.Context) []model.CheckResult {
	results := []model.CheckResult{}

	if info, err := os.Stat(p.workspaceDir); err != nil || !info.IsDir() {
		results = append(results, model.CheckResult{
			ID:      "workspace_exists",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("workspace %q is not a directory", p.workspaceDir),
		})
	} else {
		results = append(results, model.CheckResult{
			ID:      "workspace_exists",
			Status:  model.CheckStatusOK,
			Message: fmt.Sprintf("workspace %q found", p.workspaceDir),
		})
	}

	if p.notebookPath != "" {
		if _, err := os.Stat(p.resolve(p.notebookPath)); err != nil {
			results = append(results, model.CheckResult{
				ID:      "notebook_readable",
				Status:  model.CheckStatusError,
				Message: fmt.Sprintf("notebook %q is not readable", p.notebookPath),
			})
		} else {
			results = append(results, model.CheckResult{
				ID:      "notebook_readable",
				Status:  model.CheckStatusOK,
				Message: fmt.Sprintf("notebook %q found", p.notebookPath),
			})
		}
	}

	if _, err := exec.LookPath("python3"); err != nil {
		results = append(results, model.CheckResult{
			ID:      "python_available",
			Status:  model.CheckStatusWarning,
			Message: "python3 not found in PATH",
		})
	} else {
		results = append(results, model.CheckResult{
			ID:      "python_available",
			Status:  model.CheckStatusOK,
			Message: "python3 found in PATH",
		})
	}

	return results
}

func (p *Provider) ReadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(p.resolve(path))
	if err != nil {
		return "", model.NewFileOperationError("read", path, err)
	}
	return string(data), nil
}

func (p *Provider) WriteFile(ctx context.Context, path string, content string) error {
	err := os.WriteFile(p.resolve(path), []byte(content), 0o644)
	if err != nil {
		return model.NewFileOperationError("write", path, err)
	}
	return nil
}

func (p *Provider) ListFiles(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(p.resolve(dir))
	if err != nil {
		return nil, model.NewFileOperationError("list", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
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

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = p.workspaceDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := &model.ExecResult{}
	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("could not execute %q: %w", command[0], err)
	}

	return result, nil
}

func (p *Provider) CurrentWorkspace() string {
	return p.workspaceDir
}

func (p *Provider) ActiveDocument(ctx context.Context) (*model.Document, error) {
	nb, err := p.activeNotebook()
	if err != nil {
		return nil, err
	}

	doc := nb.Document()
	return &doc, nil
}

func (p *Provider) ActiveCell(ctx context.Context) (*model.NotebookCell, error) {
	if p.cellIndex < 0 {
		return nil, fmt.Errorf("no cell selected: %w", model.ErrNotFound)
	}

	nb, err := p.activeNotebook()
	if err != nil {
		return nil, err
	}

	if p.cellIndex >= len(nb.Cells) {
		return nil, fmt.Errorf("cell %d out of range (notebook has %d cells): %w", p.cellIndex, len(nb.Cells), model.ErrNotFound)
	}

	cell := nb.Cells[p.cellIndex]
	return &cell, nil
}

func (p *Provider) SelectedText(ctx context.Context) (string, error) {
	if p.selection == "" {
		return "", fmt.Errorf("no text selected: %w", model.ErrNotFound)
	}
	return p.selection, nil
}

func (p *Provider) activeNotebook() (*model.Notebook, error) {
	if p.notebookPath == "" {
		return nil, fmt.Errorf("no notebook focused: %w", model.ErrNotFound)
	}

	f, err := os.Open(p.resolve(p.notebookPath))
	if err != nil {
		return nil, model.NewFileOperationError("read", p.notebookPath, err)
	}
	defer f.Close()

	nb, err := notebook.Decode(p.notebookPath, f)
	if err != nil {
		return nil, fmt.Errorf("could not decode notebook %q: %w", p.notebookPath, err)
	}
	return nb, nil
}

func (p *Provider) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.workspaceDir, path)
}
