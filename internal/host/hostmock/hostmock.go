// Package hostmock contains a testify mock for the host.Provider interface.
package hostmock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Navteca/cline/internal/host"
	"github.com/Navteca/cline/internal/model"
)

// MockProvider is a mock implementation of host.Provider.
type MockProvider struct {
	mock.Mock
}

// NewMockProvider creates a new provider mock that asserts its expectations
// when the test finishes.
func NewMockProvider(t *testing.T) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProvider) Check(ctx context.Context) []model.CheckResult {
	args := m.Called(ctx)
	results, _ := args.Get(0).([]model.CheckResult)
	return results
}

func (m *MockProvider) ReadFile(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) WriteFile(ctx context.Context, path string, content string) error {
	args := m.Called(ctx, path, content)
	return args.Error(0)
}

func (m *MockProvider) ListFiles(ctx context.Context, dir string) ([]string, error) {
	args := m.Called(ctx, dir)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockProvider) ShowMessage(ctx context.Context, text string, severity host.Severity) {
	m.Called(ctx, text, severity)
}

func (m *MockProvider) ShowProgress(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, title, fn)

	// Run the unit of work unless the expectation overrides the result.
	if args.Error(0) == nil && fn != nil {
		return fn(ctx)
	}
	return args.Error(0)
}

func (m *MockProvider) ExecuteCommand(ctx context.Context, command []string) (*model.ExecResult, error) {
	args := m.Called(ctx, command)
	result, _ := args.Get(0).(*model.ExecResult)
	return result, args.Error(1)
}

func (m *MockProvider) CurrentWorkspace() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) ActiveDocument(ctx context.Context) (*model.Document, error) {
	args := m.Called(ctx)
	doc, _ := args.Get(0).(*model.Document)
	return doc, args.Error(1)
}

func (m *MockProvider) ActiveCell(ctx context.Context) (*model.NotebookCell, error) {
	args := m.Called(ctx)
	cell, _ := args.Get(0).(*model.NotebookCell)
	return cell, args.Error(1)
}

func (m *MockProvider) SelectedText(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
