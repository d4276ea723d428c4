package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Navteca/cline/internal/assistant"
	"github.com/Navteca/cline/internal/storage/sqlite"
)

type ChatCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	message string
}

// NewChatCommand returns the chat command.
func NewChatCommand(rootCmd *RootCommand, app *kingpin.Application) *ChatCommand {
	c := &ChatCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("chat", "Start an interactive assistant session.")
	c.Cmd.Flag("message", "Initial message for the task.").Short('m').StringVar(&c.message)

	return c
}

func (c ChatCommand) Name() string { return c.Cmd.FullCommand() }

func (c ChatCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	out := c.rootCmd.Stdout

	// Load assistant configuration.
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

	// Start the session task.
	task, err := svc.StartNewTask(ctx, c.message)
	if err != nil {
		return fmt.Errorf("could not start task: %w", err)
	}

	fmt.Fprintf(out, "Started task %s (%s)\n", task.ID, task.Title)
	fmt.Fprintln(out, "Type a message and press enter. Type \"exit\" or press Ctrl+D to finish.")

	// Line-oriented conversation loop.
	scanner := bufio.NewScanner(c.rootCmd.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}

		reply, err := svc.SendMessage(ctx, line, nil)
		if err != nil {
			return fmt.Errorf("could not send message: %w", err)
		}

		fmt.Fprintf(out, "\n%s\n\n", reply.Content)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	// Ending the session completes the task.
	if err := svc.CompleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("could not complete task: %w", err)
	}

	fmt.Fprintf(out, "\nTask %s completed.\n", task.ID)

	return nil
}
