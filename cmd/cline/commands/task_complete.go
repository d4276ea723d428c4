package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Navteca/cline/internal/app/history"
	"github.com/Navteca/cline/internal/storage/sqlite"
)

type TaskCompleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
}

// NewTaskCompleteCommand returns the task complete command.
func NewTaskCompleteCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TaskCompleteCommand {
	c := &TaskCompleteCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("complete", "Mark an active task as completed.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)

	return c
}

func (c TaskCompleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskCompleteCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	// Create history service.
	svc, err := history.NewService(history.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Complete(ctx, c.taskID); err != nil {
		return fmt.Errorf("could not complete task: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task %s completed.\n", c.taskID)

	return nil
}
