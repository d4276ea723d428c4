package assistant

import (
	"context"
	"fmt"

	"github.com/Navteca/cline/internal/model"
)

// Responder synthesizes the assistant reply for a newly appended user
// message. Exactly one assistant message is created per successful call to
// Service.SendMessage, with the returned text as its content.
//
// Implementations must not retain the task after returning.
type Responder interface {
	Respond(ctx context.Context, task *model.Task, message model.Message, cfg model.AssistantConfig) (string, error)
}

// ResponderFunc is a function adapter for Responder.
type ResponderFunc func(ctx context.Context, task *model.Task, message model.Message, cfg model.AssistantConfig) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, task *model.Task, message model.Message, cfg model.AssistantConfig) (string, error) {
	return f(ctx, task, message, cfg)
}

// CannedResponder is the default Responder. It acknowledges the user message
// without reaching any model provider, so the conversation state machine can
// run standalone. Swap it for a network-backed Responder to get real replies.
type CannedResponder struct{}

// NewCannedResponder creates a new canned responder.
func NewCannedResponder() CannedResponder { return CannedResponder{} }

func (CannedResponder) Respond(ctx context.Context, task *model.Task, message model.Message, cfg model.AssistantConfig) (string, error) {
	provider := string(cfg.Provider)
	if provider == "" {
		provider = "none"
	}

	return fmt.Sprintf(
		"I received %q. No model provider is connected (provider: %s), so this is a placeholder reply.",
		message.Content, provider,
	), nil
}
