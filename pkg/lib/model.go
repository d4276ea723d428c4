package lib

import (
	"errors"
	"time"

	"github.com/Navteca/cline/internal/model"
)

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser is a message written by the user.
	RoleUser Role = "user"
	// RoleAssistant is a message synthesized by the assistant.
	RoleAssistant Role = "assistant"
	// RoleSystem is an instruction message injected by the application.
	RoleSystem Role = "system"
	// RoleTool is a message produced by a tool invocation.
	RoleTool Role = "tool"
)

// TaskStatus represents the lifecycle state of a task.
//
// A task starts active and moves to completed or failed exactly once:
//
//	active -> completed
//	active -> failed
type TaskStatus string

const (
	// TaskStatusActive indicates the task is the ongoing conversation state.
	TaskStatusActive TaskStatus = "active"
	// TaskStatusCompleted indicates the task finished successfully.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed indicates the task finished with an error.
	TaskStatusFailed TaskStatus = "failed"
)

// APIProvider identifies the model backend family configured for the
// assistant.
type APIProvider string

const (
	APIProviderOpenAI     APIProvider = "openai"
	APIProviderAnthropic  APIProvider = "anthropic"
	APIProviderOpenRouter APIProvider = "openrouter"
	APIProviderLocal      APIProvider = "local"
)

// Message represents one turn in a conversation.
//
// This is a read-only snapshot, mutating it does not affect the stored
// conversation.
type Message struct {
	// ID is the unique identifier (ULID) assigned at creation.
	ID string
	// Role is the author of the message.
	Role Role
	// Content is the message text.
	Content string
	// Images holds optional image references attached to the message.
	Images []string
	// Timestamp is when the message was created.
	Timestamp time.Time
}

// Task represents an assistant task returned by the SDK.
//
// This is a read-only snapshot of the task state at the time of the API call.
// Use [Client.GetTask] to get the latest state.
type Task struct {
	// ID is the unique identifier (ULID) assigned at creation.
	ID string
	// Title is derived from the first user message, or "New Task".
	Title string
	// Messages is the conversation in order.
	Messages []Message
	// Status is the current lifecycle state.
	Status TaskStatus
	// Error holds the failure cause when Status is [TaskStatusFailed].
	Error string
	// CreatedAt is when the task was created.
	CreatedAt time.Time
	// UpdatedAt is refreshed on every message append and status change.
	UpdatedAt time.Time
}

// AssistantConfig configures the model backend used to synthesize replies.
type AssistantConfig struct {
	// Provider selects the backend family. Empty means unconfigured.
	Provider APIProvider
	// APIKey is the backend credential.
	APIKey string
	// APIURL overrides the backend endpoint.
	APIURL string
	// Model is the model identifier (e.g. "gpt-4o").
	Model string
	// MaxTokens caps the reply length. Zero means backend default.
	MaxTokens int
	// Temperature controls sampling randomness.
	Temperature float64
}

// CheckStatus is the outcome level of a preflight check.
type CheckStatus string

const (
	CheckStatusOK      CheckStatus = "ok"
	CheckStatusWarning CheckStatus = "warning"
	CheckStatusError   CheckStatus = "error"
)

// CheckResult describes the outcome of one preflight check.
type CheckResult struct {
	ID      string
	Status  CheckStatus
	Message string
}

// SDK error sentinels. Test with errors.Is.
var (
	// ErrNotFound is returned when a task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when an operation is not valid for the
	// current state, e.g. completing an already completed task.
	ErrNotValid = errors.New("not valid")
	// ErrNoActiveTask is returned by SendMessage when no task is current.
	ErrNoActiveTask = errors.New("no active task")
	// ErrMissingContext is returned by notebook operations lacking their
	// required context.
	ErrMissingContext = errors.New("missing context")
)

// ListTasksOpts filters [Client.ListTasks] results.
//
// Pass nil to list everything.
type ListTasksOpts struct {
	// Status only returns tasks in this state.
	Status *TaskStatus
}

func fromInternalMessage(m model.Message) Message {
	msg := Message{
		ID:        m.ID,
		Role:      Role(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if m.Metadata != nil && len(m.Metadata.Images) > 0 {
		msg.Images = append([]string{}, m.Metadata.Images...)
	}
	return msg
}

func fromInternalTask(t model.Task) Task {
	messages := make([]Message, len(t.Messages))
	for i, m := range t.Messages {
		messages[i] = fromInternalMessage(m)
	}

	return Task{
		ID:        t.ID,
		Title:     t.Title,
		Messages:  messages,
		Status:    TaskStatus(t.Status),
		Error:     t.Error,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func fromInternalTaskList(ts []model.Task) []Task {
	result := make([]Task, len(ts))
	for i, t := range ts {
		result[i] = fromInternalTask(t)
	}
	return result
}

func toInternalConfig(cfg AssistantConfig) model.AssistantConfig {
	return model.AssistantConfig{
		Provider:    model.APIProvider(cfg.Provider),
		APIKey:      cfg.APIKey,
		APIURL:      cfg.APIURL,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

func fromInternalConfig(cfg model.AssistantConfig) AssistantConfig {
	return AssistantConfig{
		Provider:    APIProvider(cfg.Provider),
		APIKey:      cfg.APIKey,
		APIURL:      cfg.APIURL,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

func toInternalStatusFilter(opts *ListTasksOpts) *model.TaskStatus {
	if opts == nil || opts.Status == nil {
		return nil
	}
	s := model.TaskStatus(*opts.Status)
	return &s
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case errors.Is(err, model.ErrNoActiveTask):
		return joinErrors(err, ErrNoActiveTask)
	case errors.Is(err, model.ErrMissingContext):
		return joinErrors(err, ErrMissingContext)
	default:
		return err
	}
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
