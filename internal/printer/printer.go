package printer

import "github.com/Navteca/cline/internal/model"

// Printer knows how to print task information in different formats.
type Printer interface {
	PrintTaskList(tasks []model.Task) error
	PrintTask(task model.Task) error
	PrintChecks(results []model.CheckResult) error
	PrintMessage(msg string) error
}
