package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Navteca/cline/internal/model"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTaskList prints tasks in a table format.
func (t *TablePrinter) PrintTaskList(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tMESSAGES\tUPDATED")

	// Print rows
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", task.ID, task.Title, task.Status, len(task.Messages), TimeAgo(task.UpdatedAt))
	}

	return nil
}

// PrintTask prints a task with its full conversation.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", task.ID)
	fmt.Fprintf(t.writer, "Title:      %s\n", task.Title)
	fmt.Fprintf(t.writer, "Status:     %s\n", task.Status)
	if task.Error != "" {
		fmt.Fprintf(t.writer, "Error:      %s\n", task.Error)
	}
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(task.CreatedAt))
	fmt.Fprintf(t.writer, "Updated:    %s\n", FormatTimestamp(task.UpdatedAt))

	for _, msg := range task.Messages {
		fmt.Fprintf(t.writer, "\n[%s] %s\n", msg.Role, FormatTimestamp(msg.Timestamp))
		fmt.Fprintln(t.writer, msg.Content)
		if msg.Metadata != nil && len(msg.Metadata.Images) > 0 {
			fmt.Fprintf(t.writer, "(images: %s)\n", strings.Join(msg.Metadata.Images, ", "))
		}
	}

	return nil
}

// PrintChecks prints preflight check results in a table format.
func (t *TablePrinter) PrintChecks(results []model.CheckResult) error {
	if len(results) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print header
	fmt.Fprintln(tw, "STATUS\tCHECK\tMESSAGE")

	// Print rows
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", strings.ToUpper(string(r.Status)), r.ID, r.Message)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	ok, warnings, errs := model.CountByStatus(results)
	fmt.Fprintf(t.writer, "\n%d ok, %d warnings, %d errors\n", ok, warnings, errs)

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
