package lib

import (
	"context"
	"fmt"
	"os"

	"github.com/Navteca/cline/internal/app/history"
	"github.com/Navteca/cline/internal/assistant"
	"github.com/Navteca/cline/internal/conventions"
	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
	"github.com/Navteca/cline/internal/storage/sqlite"
)

// Responder synthesizes the assistant reply for a user message.
//
// It receives a snapshot of the task so far (including the new message), the
// new user message and the assistant configuration it should honor.
type Responder func(ctx context.Context, task Task, message Message, cfg AssistantConfig) (string, error)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will use ~/.cline/cline.db for storage and a placeholder
// responder.
type Config struct {
	// DBPath is the SQLite database path.
	// Default: ~/.cline/cline.db.
	DBPath string

	// Assistant is the model backend configuration handed to the responder.
	Assistant AssistantConfig

	// Responder synthesizes assistant replies. Default: a canned
	// placeholder reply (no model backend is contacted).
	Responder Responder

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DBPath = conventions.DBPath(home)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for managing assistant tasks
// programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	svc     *assistant.Service
	hist    *history.Service
	logger  log.Logger
	closeFn func() error
}

// New creates a new SDK client backed by a SQLite database.
//
// The caller must call [Client.Close] when done to release the database
// connection. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	var responder assistant.Responder
	if cfg.Responder != nil {
		r := cfg.Responder
		responder = assistant.ResponderFunc(func(ctx context.Context, task *model.Task, m model.Message, c model.AssistantConfig) (string, error) {
			return r(ctx, fromInternalTask(*task), fromInternalMessage(m), fromInternalConfig(c))
		})
	}

	svc, err := assistant.NewService(assistant.ServiceConfig{
		Config:     toInternalConfig(cfg.Assistant),
		Responder:  responder,
		Repository: repo,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create assistant service: %w", err)
	}

	hist, err := history.NewService(history.ServiceConfig{
		Repository: repo,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create history service: %w", err)
	}

	return &Client{
		svc:     svc,
		hist:    hist,
		logger:  cfg.Logger,
		closeFn: repo.Close,
	}, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// StartTask creates a new task and makes it current. An empty initialMessage
// starts the task without messages.
func (c *Client) StartTask(ctx context.Context, initialMessage string) (Task, error) {
	task, err := c.svc.StartNewTask(ctx, initialMessage)
	if err != nil {
		return Task{}, mapError(err)
	}
	return fromInternalTask(*task), nil
}

// SendMessage records a user message on the current task and returns the
// synthesized assistant reply.
//
// Returns [ErrNoActiveTask] when no task is current.
func (c *Client) SendMessage(ctx context.Context, content string, images []string) (Message, error) {
	reply, err := c.svc.SendMessage(ctx, content, images)
	if err != nil {
		return Message{}, mapError(err)
	}
	return fromInternalMessage(*reply), nil
}

// CurrentTask returns a snapshot of the current task. The second return is
// false when there is no current task.
func (c *Client) CurrentTask() (Task, bool) {
	task := c.svc.CurrentTask()
	if task == nil {
		return Task{}, false
	}
	return fromInternalTask(*task), true
}

// Tasks returns snapshots of the tasks started through this client, in
// creation order.
func (c *Client) Tasks() []Task {
	tasks := c.svc.Tasks()
	result := make([]Task, len(tasks))
	for i, t := range tasks {
		result[i] = fromInternalTask(*t)
	}
	return result
}

// CompleteTask marks an active task started through this client as
// completed.
//
// Returns [ErrNotFound] for unknown tasks and [ErrNotValid] for tasks that
// already finished.
func (c *Client) CompleteTask(ctx context.Context, taskID string) error {
	return mapError(c.svc.CompleteTask(ctx, taskID))
}

// FailTask marks an active task started through this client as failed,
// recording the cause.
func (c *Client) FailTask(ctx context.Context, taskID string, cause error) error {
	return mapError(c.svc.FailTask(ctx, taskID, cause))
}

// UpdateConfig merges the set fields into the assistant configuration used
// for subsequent replies. Zero-value fields are left untouched.
func (c *Client) UpdateConfig(update AssistantConfig) {
	internal := toInternalConfig(update)
	modelUpdate := model.ConfigUpdate{}
	if update.Provider != "" {
		modelUpdate.Provider = &internal.Provider
	}
	if update.APIKey != "" {
		modelUpdate.APIKey = &internal.APIKey
	}
	if update.APIURL != "" {
		modelUpdate.APIURL = &internal.APIURL
	}
	if update.Model != "" {
		modelUpdate.Model = &internal.Model
	}
	if update.MaxTokens != 0 {
		modelUpdate.MaxTokens = &internal.MaxTokens
	}
	if update.Temperature != 0 {
		modelUpdate.Temperature = &internal.Temperature
	}
	c.svc.UpdateConfig(modelUpdate)
}

// ListTasks returns stored task history, including tasks created by other
// processes. Pass nil opts to list everything.
func (c *Client) ListTasks(ctx context.Context, opts *ListTasksOpts) ([]Task, error) {
	tasks, err := c.hist.List(ctx, history.ListRequest{
		StatusFilter: toInternalStatusFilter(opts),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalTaskList(tasks), nil
}

// GetTask returns a stored task with its full message history.
//
// Returns [ErrNotFound] when the task does not exist.
func (c *Client) GetTask(ctx context.Context, taskID string) (Task, error) {
	task, err := c.hist.Get(ctx, taskID)
	if err != nil {
		return Task{}, mapError(err)
	}
	return fromInternalTask(*task), nil
}
