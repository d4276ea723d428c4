package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrNoActiveTask is returned when an operation requires a current task and none is set.
	ErrNoActiveTask = errors.New("no active task")
	// ErrMissingContext is returned when an assistant operation lacks its required
	// environment context (notebook, cell, selection).
	ErrMissingContext = errors.New("missing context")
)

// FileOperationError is returned by host providers when a file operation fails.
// The message always names the failing path.
type FileOperationError struct {
	Operation string
	Path      string
	Err       error
}

func (e *FileOperationError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *FileOperationError) Unwrap() error { return e.Err }

// NewFileOperationError creates a FileOperationError for the given operation and path.
func NewFileOperationError(operation, path string, err error) *FileOperationError {
	return &FileOperationError{Operation: operation, Path: path, Err: err}
}
