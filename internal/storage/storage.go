package storage

import (
	"context"

	"github.com/Navteca/cline/internal/model"
)

// Repository is the interface for task history persistence. Messages are
// append-only and their insertion order is conversation order.
type Repository interface {
	CreateTask(ctx context.Context, t model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	AppendMessage(ctx context.Context, taskID string, m model.Message) error
	UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus, taskErr string) error
}
