package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	tasks  map[string]model.Task
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		tasks:  make(map[string]model.Task),
		logger: cfg.Logger,
	}, nil
}

// CreateTask creates a new task in the repository.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; ok {
		return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
	}

	r.tasks[t.ID] = copyTask(t)
	r.logger.Debugf("Created task in repository: %s", t.ID)

	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	// Return a copy
	taskCopy := copyTask(task)
	return &taskCopy, nil
}

// ListTasks returns all tasks ordered by creation time.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, copyTask(task))
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// AppendMessage appends a message to an existing task.
func (r *Repository) AppendMessage(ctx context.Context, taskID string, m model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}

	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	task.Messages = append(task.Messages, m)
	task.UpdatedAt = m.Timestamp
	r.tasks[taskID] = task
	r.logger.Debugf("Appended message %s to task %s", m.ID, taskID)

	return nil
}

// UpdateTaskStatus updates the status of an existing task.
func (r *Repository) UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus, taskErr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}

	task.Status = status
	task.Error = taskErr
	r.tasks[taskID] = task
	r.logger.Debugf("Updated task %s status to %s", taskID, status)

	return nil
}

// copyTask copies a task including its message slice so callers can't mutate
// repository state through returned values.
func copyTask(t model.Task) model.Task {
	messages := make([]model.Message, len(t.Messages))
	copy(messages, t.Messages)
	t.Messages = messages
	return t
}
