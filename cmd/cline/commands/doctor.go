package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Navteca/cline/internal/model"
)

type DoctorCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	hostFlags *hostFlags
}

// NewDoctorCommand returns the doctor command.
func NewDoctorCommand(rootCmd *RootCommand, app *kingpin.Application) *DoctorCommand {
	c := &DoctorCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("doctor", "Run preflight checks for the host environment.")
	c.hostFlags = registerHostFlags(c.Cmd)

	return c
}

func (c DoctorCommand) Name() string { return c.Cmd.FullCommand() }

func (c DoctorCommand) Run(ctx context.Context) error {
	out := c.rootCmd.Stdout

	provider, err := c.hostFlags.provider(c.rootCmd.Logger)
	if err != nil {
		return fmt.Errorf("could not create host provider: %w", err)
	}

	fmt.Fprintf(out, "Checking %s host...\n", c.hostFlags.hostType)
	results := provider.Check(ctx)

	for _, r := range results {
		fmt.Fprintf(out, "  %s %-20s %s\n", statusIcon(r.Status), r.ID, r.Message)
	}

	ok, warnings, errs := model.CountByStatus(results)
	fmt.Fprintln(out)
	if errs == 0 && warnings == 0 {
		fmt.Fprintln(out, "All checks passed!")
	} else {
		fmt.Fprintf(out, "%d ok, %d warning(s), %d error(s)\n", ok, warnings, errs)
	}

	if errs > 0 {
		return fmt.Errorf("preflight checks failed with %d error(s)", errs)
	}

	return nil
}

func statusIcon(status model.CheckStatus) string {
	switch status {
	case model.CheckStatusOK:
		return "OK"
	case model.CheckStatusWarning:
		return "!!"
	case model.CheckStatusError:
		return "XX"
	default:
		return "??"
	}
}
