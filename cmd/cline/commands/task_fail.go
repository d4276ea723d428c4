package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Navteca/cline/internal/app/history"
	"github.com/Navteca/cline/internal/storage/sqlite"
)

type TaskFailCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
	reason string
}

// NewTaskFailCommand returns the task fail command.
func NewTaskFailCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TaskFailCommand {
	c := &TaskFailCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("fail", "Mark an active task as failed.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Flag("reason", "Reason the task failed.").Required().StringVar(&c.reason)

	return c
}

func (c TaskFailCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskFailCommand) Run(ctx context.Context) error {
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

	if err := svc.Fail(ctx, c.taskID, c.reason); err != nil {
		return fmt.Errorf("could not fail task: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task %s marked as failed.\n", c.taskID)

	return nil
}
