// Package storagemock contains testify mocks for the storage interfaces.
package storagemock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Navteca/cline/internal/model"
)

// MockRepository is a mock implementation of storage.Repository.
type MockRepository struct {
	mock.Mock
}

// NewMockRepository creates a new repository mock that asserts its
// expectations when the test finishes.
func NewMockRepository(t *testing.T) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) CreateTask(ctx context.Context, task model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockRepository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockRepository) AppendMessage(ctx context.Context, taskID string, msg model.Message) error {
	args := m.Called(ctx, taskID, msg)
	return args.Error(0)
}

func (m *MockRepository) UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus, taskErr string) error {
	args := m.Called(ctx, taskID, status, taskErr)
	return args.Error(0)
}
