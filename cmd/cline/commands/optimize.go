package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type OptimizeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	hostFlags *hostFlags
}

// NewOptimizeCommand returns the optimize command.
func NewOptimizeCommand(rootCmd *RootCommand, app *kingpin.Application) *OptimizeCommand {
	c := &OptimizeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("optimize", "Optimize the selected code.")
	c.hostFlags = registerHostFlags(c.Cmd)

	return c
}

func (c OptimizeCommand) Name() string { return c.Cmd.FullCommand() }

func (c OptimizeCommand) Run(ctx context.Context) error {
	svc, err := newAdapterService(ctx, c.rootCmd, c.hostFlags)
	if err != nil {
		return err
	}

	reply, err := svc.OptimizeSelection(ctx)
	if err != nil {
		return fmt.Errorf("could not optimize selection: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, reply.Content)

	return nil
}
