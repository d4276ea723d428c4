package model

import (
	"fmt"
	"time"
)

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser indicates a message written by the user.
	RoleUser Role = "user"
	// RoleAssistant indicates a message produced by the assistant.
	RoleAssistant Role = "assistant"
	// RoleSystem indicates an internal message surfaced to the conversation.
	RoleSystem Role = "system"
	// RoleTool indicates a message produced by a tool invocation.
	RoleTool Role = "tool"
)

// Message is a single turn in a task conversation. Messages are immutable
// after creation and belong to exactly one task.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Metadata  *MessageMetadata
}

// MessageMetadata is the optional open-ended attachment of a message.
type MessageMetadata struct {
	// Images are references to images attached to the message.
	Images []string `json:"images,omitempty"`
	// Extra holds any additional host-supplied attachment data.
	Extra map[string]string `json:"extra,omitempty"`
}

// Validate validates the message.
func (m *Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	switch m.Role {
	case RoleUser, RoleAssistant, RoleSystem, RoleTool:
	default:
		return fmt.Errorf("unknown role %q: %w", m.Role, ErrNotValid)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required: %w", ErrNotValid)
	}
	return nil
}
