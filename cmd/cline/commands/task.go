package commands

import (
	"github.com/alecthomas/kingpin/v2"

	"github.com/Navteca/cline/internal/printer"
)

// NewTaskCommand returns the parent command for the task subcommands.
func NewTaskCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("task", "Manage assistant tasks.")
}

func newPrinter(rootCmd *RootCommand, format string) printer.Printer {
	switch format {
	case "json":
		return printer.NewJSONPrinter(rootCmd.Stdout)
	default: // table
		return printer.NewTablePrinter(rootCmd.Stdout)
	}
}
