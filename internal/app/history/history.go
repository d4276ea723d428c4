// Package history serves the persisted task history to the outer surfaces.
package history

import (
	"context"
	"fmt"

	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
	"github.com/Navteca/cline/internal/storage"
)

// ServiceConfig is the configuration for the history service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "history.Service"})

	return nil
}

// Service reads task history from storage.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new history service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// ListRequest represents the list request parameters.
type ListRequest struct {
	// StatusFilter is an optional filter to only show tasks with this status.
	StatusFilter *model.TaskStatus
}

// List returns the stored tasks in creation order, optionally filtered by
// status.
func (s *Service) List(ctx context.Context, req ListRequest) ([]model.Task, error) {
	s.logger.Debugf("listing tasks with filter: %v", req.StatusFilter)

	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	if req.StatusFilter != nil {
		filtered := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == *req.StatusFilter {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	s.logger.Debugf("found %d tasks", len(tasks))
	return tasks, nil
}

// Get returns a single stored task with its full message history.
func (s *Service) Get(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	return task, nil
}

// Complete marks a stored active task as completed.
func (s *Service) Complete(ctx context.Context, taskID string) error {
	return s.finish(ctx, taskID, model.TaskStatusCompleted, "")
}

// Fail marks a stored active task as failed, recording the reason.
func (s *Service) Fail(ctx context.Context, taskID string, reason string) error {
	return s.finish(ctx, taskID, model.TaskStatusFailed, reason)
}

func (s *Service) finish(ctx context.Context, taskID string, status model.TaskStatus, taskErr string) error {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("could not get task: %w", err)
	}

	if task.Status != model.TaskStatusActive {
		return fmt.Errorf("task %s is not active (status: %s): %w", taskID, task.Status, model.ErrNotValid)
	}

	if err := s.repo.UpdateTaskStatus(ctx, taskID, status, taskErr); err != nil {
		return fmt.Errorf("could not update task status: %w", err)
	}

	s.logger.Infof("Task %s finished with status %s", taskID, status)
	return nil
}
