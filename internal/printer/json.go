package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/Navteca/cline/internal/model"
)

// JSONPrinter prints task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents a task in the list output (subset of fields).
type listItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Messages  int       `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// taskOutput represents the full task output.
type taskOutput struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	Messages  []messageItem   `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// messageItem represents a single conversation message output.
type messageItem struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Images    []string  `json:"images,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// checkItem represents a preflight check result output.
type checkItem struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintTaskList prints tasks in JSON format with a subset of fields.
func (j *JSONPrinter) PrintTaskList(tasks []model.Task) error {
	items := make([]listItem, len(tasks))
	for i, task := range tasks {
		items[i] = listItem{
			ID:        task.ID,
			Title:     task.Title,
			Status:    string(task.Status),
			Messages:  len(task.Messages),
			CreatedAt: task.CreatedAt.UTC(),
			UpdatedAt: task.UpdatedAt.UTC(),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintTask prints a task with its full conversation in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	messages := make([]messageItem, len(task.Messages))
	for i, msg := range task.Messages {
		item := messageItem{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Content:   msg.Content,
			Timestamp: msg.Timestamp.UTC(),
		}
		if msg.Metadata != nil {
			item.Images = msg.Metadata.Images
		}
		messages[i] = item
	}

	output := taskOutput{
		ID:        task.ID,
		Title:     task.Title,
		Status:    string(task.Status),
		Error:     task.Error,
		Messages:  messages,
		CreatedAt: task.CreatedAt.UTC(),
		UpdatedAt: task.UpdatedAt.UTC(),
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintChecks prints preflight check results in JSON format.
func (j *JSONPrinter) PrintChecks(results []model.CheckResult) error {
	items := make([]checkItem, len(results))
	for i, r := range results {
		items[i] = checkItem{
			ID:      r.ID,
			Status:  string(r.Status),
			Message: r.Message,
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	output := messageOutput{Message: msg}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
