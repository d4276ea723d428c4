// Package jupyter adapts the assistant core to a notebook host: it looks
// up notebook context through the host provider and forwards it to the
// assistant as conversation messages.
package jupyter

import (
	"context"
	"errors"
	"fmt"

	"github.com/Navteca/cline/internal/assistant"
	"github.com/Navteca/cline/internal/host"
	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
)

// ServiceConfig is the configuration for the notebook adapter service.
type ServiceConfig struct {
	Assistant *assistant.Service
	Provider  host.Provider
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Assistant == nil {
		return fmt.Errorf("assistant service is required")
	}
	if c.Provider == nil {
		return fmt.Errorf("host provider is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "jupyter.Service"})
	return nil
}

// Service exposes notebook-aware assistant operations. It composes the
// assistant service and a host provider, it does not own any task state.
type Service struct {
	assistant *assistant.Service
	provider  host.Provider
	logger    log.Logger
}

// NewService creates a new notebook adapter service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		assistant: cfg.Assistant,
		provider:  cfg.Provider,
		logger:    cfg.Logger,
	}, nil
}

// AnalyzeNotebook asks the assistant to analyze the focused notebook
// document. Fails with model.ErrMissingContext when no document is focused,
// without touching the assistant state.
func (s *Service) AnalyzeNotebook(ctx context.Context) (*model.Message, error) {
	doc, err := s.provider.ActiveDocument(ctx)
	if err != nil {
		return nil, missingContext("active notebook document", err)
	}

	prompt := fmt.Sprintf("Analyze this %s notebook (%s) and describe what it does:\n\n%s", doc.Language, doc.Path, doc.Content)

	return s.forward(ctx, "Analyzing notebook", prompt)
}

// ExplainCell asks the assistant to explain the selected notebook cell.
// Fails with model.ErrMissingContext when no cell is selected, without
// touching the assistant state.
func (s *Service) ExplainCell(ctx context.Context) (*model.Message, error) {
	cell, err := s.provider.ActiveCell(ctx)
	if err != nil {
		return nil, missingContext("selected notebook cell", err)
	}

	prompt := fmt.Sprintf("Explain what this %s cell does:\n\n%s", cell.Language, cell.Source)

	return s.forward(ctx, "Explaining cell", prompt)
}

// OptimizeSelection asks the assistant to optimize the selected code.
// Fails with model.ErrMissingContext when nothing is selected, without
// touching the assistant state.
func (s *Service) OptimizeSelection(ctx context.Context) (*model.Message, error) {
	selection, err := s.provider.SelectedText(ctx)
	if err != nil {
		return nil, missingContext("selected code", err)
	}
	if selection == "" {
		return nil, missingContext("selected code", model.ErrNotFound)
	}

	prompt := fmt.Sprintf("Optimize this code and explain the changes:\n\n%s", selection)

	return s.forward(ctx, "Optimizing selection", prompt)
}

// forward routes the prompt into the assistant, starting a task first when
// none is current, reporting progress through the host.
func (s *Service) forward(ctx context.Context, title string, prompt string) (*model.Message, error) {
	if s.assistant.CurrentTask() == nil {
		if _, err := s.assistant.StartNewTask(ctx, ""); err != nil {
			return nil, fmt.Errorf("could not start task: %w", err)
		}
	}

	var reply *model.Message
	err := s.provider.ShowProgress(ctx, title, func(ctx context.Context) error {
		m, err := s.assistant.SendMessage(ctx, prompt, nil)
		if err != nil {
			return err
		}
		reply = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not send message: %w", err)
	}

	return reply, nil
}

func missingContext(what string, cause error) error {
	if errors.Is(cause, model.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, model.ErrMissingContext)
	}
	return fmt.Errorf("could not get %s: %w", what, cause)
}
