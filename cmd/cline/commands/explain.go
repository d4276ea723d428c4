package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type ExplainCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	hostFlags *hostFlags
}

// NewExplainCommand returns the explain command.
func NewExplainCommand(rootCmd *RootCommand, app *kingpin.Application) *ExplainCommand {
	c := &ExplainCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("explain", "Explain the selected notebook cell.")
	c.hostFlags = registerHostFlags(c.Cmd)

	return c
}

func (c ExplainCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExplainCommand) Run(ctx context.Context) error {
	svc, err := newAdapterService(ctx, c.rootCmd, c.hostFlags)
	if err != nil {
		return err
	}

	reply, err := svc.ExplainCell(ctx)
	if err != nil {
		return fmt.Errorf("could not explain cell: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, reply.Content)

	return nil
}
