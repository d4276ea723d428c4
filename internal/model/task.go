package model

import (
	"strings"
	"time"
)

// TaskStatus represents the state of a task.
type TaskStatus string

const (
	// TaskStatusActive indicates the task is the ongoing conversation.
	TaskStatusActive TaskStatus = "active"
	// TaskStatusCompleted indicates the task finished successfully.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed indicates the task failed.
	TaskStatusFailed TaskStatus = "failed"
)

const (
	// DefaultTaskTitle is the title used for tasks started without an initial message.
	DefaultTaskTitle = "New Task"

	// taskTitleMaxWords is the number of leading words kept when deriving a
	// title from the first user message.
	taskTitleMaxWords = 6
)

// Task is a single conversation with the assistant: an ordered, append-only
// message history plus a status. Message insertion order is conversation
// order and is never reordered or truncated.
type Task struct {
	ID        string
	Title     string
	Messages  []Message
	Status    TaskStatus
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TitleFromMessage derives a task title from the first user message: the
// first 6 whitespace-separated words joined by single spaces, with a
// trailing ellipsis only when the message has more words than that.
// Empty messages get DefaultTaskTitle.
func TitleFromMessage(message string) string {
	words := strings.Fields(message)
	if len(words) == 0 {
		return DefaultTaskTitle
	}

	if len(words) <= taskTitleMaxWords {
		return strings.Join(words, " ")
	}

	return strings.Join(words[:taskTitleMaxWords], " ") + "…"
}
