// Package assistant implements the conversation core: it owns the task list
// and the current-task pointer, and is the only component that mutates them.
package assistant

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
	"github.com/Navteca/cline/internal/storage"
	"github.com/Navteca/cline/internal/storage/memory"
)

// ServiceConfig is the configuration for the assistant service.
type ServiceConfig struct {
	// Config is the assistant configuration record.
	Config model.AssistantConfig
	// Responder synthesizes assistant replies. Defaults to CannedResponder.
	Responder Responder
	// Repository persists task history. Defaults to the in-memory repository.
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("invalid assistant config: %w", err)
	}
	if c.Responder == nil {
		c.Responder = NewCannedResponder()
	}
	if c.Repository == nil {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: c.Logger})
		if err != nil {
			return fmt.Errorf("could not create default repository: %w", err)
		}
		c.Repository = repo
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "assistant.Service"})
	return nil
}

// Service is the assistant conversation core. All operations are safe for
// concurrent use; each one executes atomically with respect to the task list
// and the current-task pointer.
type Service struct {
	responder Responder
	repo      storage.Repository
	logger    log.Logger

	mu      sync.Mutex
	config  model.AssistantConfig
	tasks   []*model.Task
	current *model.Task
}

// NewService creates a new assistant service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.Logger.Debugf("Assistant initialized (provider: %s, model: %s)", cfg.Config.Provider, cfg.Config.Model)

	return &Service{
		responder: cfg.Responder,
		repo:      cfg.Repository,
		logger:    cfg.Logger,
		config:    cfg.Config,
	}, nil
}

// StartNewTask creates a new task, makes it current and appends it to the
// task list. Prior tasks stay in the list. An empty initialMessage starts
// the task without messages and with the default title; otherwise the
// message is recorded as the first user message and the title is derived
// from it.
//
// The returned task is the live task: the caller and the service observe
// subsequent mutations through the same reference.
func (s *Service) StartNewTask(ctx context.Context, initialMessage string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	task := &model.Task{
		ID:        newID(),
		Title:     model.TitleFromMessage(initialMessage),
		Status:    model.TaskStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if initialMessage != "" {
		task.Messages = append(task.Messages, newMessage(model.RoleUser, initialMessage, nil, now))
	}

	if err := s.repo.CreateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("could not save task: %w", err)
	}

	s.tasks = append(s.tasks, task)
	s.current = task
	s.logger.Infof("Started task %s (%q)", task.ID, task.Title)

	return task, nil
}

// SendMessage records a user message on the current task and synthesizes
// exactly one assistant reply, which is returned. It fails with
// model.ErrNoActiveTask before any state change when no task is current.
// Optional image references are carried in the user message metadata.
func (s *Service) SendMessage(ctx context.Context, content string, images []string) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, fmt.Errorf("could not send message: %w", model.ErrNoActiveTask)
	}
	task := s.current

	var metadata *model.MessageMetadata
	if len(images) > 0 {
		metadata = &model.MessageMetadata{Images: images}
	}

	userMsg := newMessage(model.RoleUser, content, metadata, time.Now().UTC())
	if err := s.append(ctx, task, userMsg); err != nil {
		return nil, fmt.Errorf("could not record user message: %w", err)
	}

	reply, err := s.responder.Respond(ctx, task, userMsg, s.config)
	if err != nil {
		return nil, fmt.Errorf("could not synthesize reply: %w", err)
	}

	assistantMsg := newMessage(model.RoleAssistant, reply, nil, time.Now().UTC())
	if err := s.append(ctx, task, assistantMsg); err != nil {
		return nil, fmt.Errorf("could not record assistant message: %w", err)
	}

	s.logger.Debugf("Task %s exchanged messages %s -> %s", task.ID, userMsg.ID, assistantMsg.ID)

	return &assistantMsg, nil
}

// CurrentTask returns the live current task, or nil when there is none.
func (s *Service) CurrentTask() *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Tasks returns the task list in creation order. The returned slice is a
// copy: mutating it does not affect the service state.
func (s *Service) Tasks() []*model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]*model.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// CompleteTask marks an active task as completed. Completing the current
// task leaves the service without a current task.
func (s *Service) CompleteTask(ctx context.Context, taskID string) error {
	return s.finishTask(ctx, taskID, model.TaskStatusCompleted, "")
}

// FailTask marks an active task as failed, recording the cause. Failing the
// current task leaves the service without a current task.
func (s *Service) FailTask(ctx context.Context, taskID string, cause error) error {
	taskErr := ""
	if cause != nil {
		taskErr = cause.Error()
	}
	return s.finishTask(ctx, taskID, model.TaskStatusFailed, taskErr)
}

// UpdateConfig merges the set fields of the update into the stored
// configuration. Unset fields are left untouched.
func (s *Service) UpdateConfig(update model.ConfigUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = s.config.Merge(update)
	s.logger.Debugf("Updated assistant config (provider: %s, model: %s)", s.config.Provider, s.config.Model)
}

// Config returns a snapshot of the current configuration.
func (s *Service) Config() model.AssistantConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.config
}

// append persists a message and then mutates the in-memory task, so a
// storage failure leaves the in-memory state untouched.
func (s *Service) append(ctx context.Context, task *model.Task, m model.Message) error {
	if err := s.repo.AppendMessage(ctx, task.ID, m); err != nil {
		return err
	}

	task.Messages = append(task.Messages, m)
	task.UpdatedAt = m.Timestamp
	return nil
}

func (s *Service) finishTask(ctx context.Context, taskID string, status model.TaskStatus, taskErr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var task *model.Task
	for _, t := range s.tasks {
		if t.ID == taskID {
			task = t
			break
		}
	}
	if task == nil {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}

	if task.Status != model.TaskStatusActive {
		return fmt.Errorf("task %s is not active (status: %s): %w", taskID, task.Status, model.ErrNotValid)
	}

	if err := s.repo.UpdateTaskStatus(ctx, taskID, status, taskErr); err != nil {
		return fmt.Errorf("could not save task status: %w", err)
	}

	task.Status = status
	task.Error = taskErr
	if s.current == task {
		s.current = nil
	}

	s.logger.Infof("Task %s finished with status %s", taskID, status)
	return nil
}

func newMessage(role model.Role, content string, metadata *model.MessageMetadata, ts time.Time) model.Message {
	return model.Message{
		ID:        newID(),
		Role:      role,
		Content:   content,
		Timestamp: ts,
		Metadata:  metadata,
	}
}

func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
