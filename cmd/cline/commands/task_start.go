package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Navteca/cline/internal/assistant"
	"github.com/Navteca/cline/internal/storage/sqlite"
)

type TaskStartCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	message string
	format  string
}

// NewTaskStartCommand returns the task start command.
func NewTaskStartCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TaskStartCommand {
	c := &TaskStartCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("start", "Start a new task.")
	c.Cmd.Flag("message", "Initial message for the task.").Short('m').StringVar(&c.message)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TaskStartCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskStartCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.AssistantConfig(ctx)
	if err != nil {
		return err
	}

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	// Create assistant service.
	svc, err := assistant.NewService(assistant.ServiceConfig{
		Config:     cfg,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.StartNewTask(ctx, c.message)
	if err != nil {
		return fmt.Errorf("could not start task: %w", err)
	}

	p := newPrinter(c.rootCmd, c.format)
	if err := p.PrintTask(*task); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}
