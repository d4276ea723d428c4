package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type AnalyzeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	hostFlags *hostFlags
}

// NewAnalyzeCommand returns the analyze command.
func NewAnalyzeCommand(rootCmd *RootCommand, app *kingpin.Application) *AnalyzeCommand {
	c := &AnalyzeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("analyze", "Analyze the active notebook.")
	c.hostFlags = registerHostFlags(c.Cmd)

	return c
}

func (c AnalyzeCommand) Name() string { return c.Cmd.FullCommand() }

func (c AnalyzeCommand) Run(ctx context.Context) error {
	svc, err := newAdapterService(ctx, c.rootCmd, c.hostFlags)
	if err != nil {
		return err
	}

	reply, err := svc.AnalyzeNotebook(ctx)
	if err != nil {
		return fmt.Errorf("could not analyze notebook: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, reply.Content)

	return nil
}
