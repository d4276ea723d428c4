// Package host defines the capability interface through which the assistant
// core reaches its surrounding environment (files, UI, terminal, editor
// context) without coupling the core to any concrete host.
package host

import (
	"context"

	"github.com/Navteca/cline/internal/model"
)

// Severity is the level of a host notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Provider is the interface for host environment operations. Any host
// implementing this capability set can drive the assistant core.
type Provider interface {
	// Check performs preflight checks and returns the results.
	// Checks verify that the host has all required dependencies and context.
	Check(ctx context.Context) []model.CheckResult

	// ReadFile returns the content of a file. Failures are reported as
	// *model.FileOperationError naming the path.
	ReadFile(ctx context.Context, path string) (string, error)

	// WriteFile writes content to a file, creating it when missing.
	WriteFile(ctx context.Context, path string, content string) error

	// ListFiles returns the entry names of a directory.
	ListFiles(ctx context.Context, dir string) ([]string, error)

	// ShowMessage notifies the user. It never fails the caller.
	ShowMessage(ctx context.Context, text string, severity Severity)

	// ShowProgress runs fn reporting start, completion and failure. On
	// failure the underlying error is re-raised after reporting.
	ShowProgress(ctx context.Context, title string, fn func(ctx context.Context) error) error

	// ExecuteCommand executes an external command in the host's terminal
	// surface. Result fields are always populated.
	ExecuteCommand(ctx context.Context, command []string) (*model.ExecResult, error)

	// CurrentWorkspace returns the workspace root path.
	CurrentWorkspace() string

	// ActiveDocument returns a flattened view of the focused document.
	// Returns model.ErrNotFound when no document is focused.
	ActiveDocument(ctx context.Context) (*model.Document, error)

	// ActiveCell returns the selected notebook cell.
	// Returns model.ErrNotFound when no cell is selected.
	ActiveCell(ctx context.Context) (*model.NotebookCell, error)

	// SelectedText returns the current text selection.
	// Returns model.ErrNotFound when nothing is selected.
	SelectedText(ctx context.Context) (string, error)
}
