package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navteca/cline/internal/model"
	"github.com/Navteca/cline/internal/printer"
)

func taskFixture() model.Task {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	return model.Task{
		ID:     "01234567890ABCDEFGHIJKLMNOP",
		Title:  "Fix the import error",
		Status: model.TaskStatusActive,
		Messages: []model.Message{
			{
				ID:        "msg-1",
				Role:      model.RoleUser,
				Content:   "Fix the import error",
				Timestamp: createdAt,
			},
			{
				ID:        "msg-2",
				Role:      model.RoleAssistant,
				Content:   "Looking into it.",
				Timestamp: createdAt.Add(time.Second),
				Metadata:  &model.MessageMetadata{Images: []string{"trace.png"}},
			},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt.Add(time.Second),
	}
}

func TestTablePrinterPrintTask(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTask(taskFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Title:      Fix the import error")
	assert.Contains(t, out, "Status:     active")
	assert.Contains(t, out, "[user] 2026-01-30 10:00:00 UTC")
	assert.Contains(t, out, "[assistant] 2026-01-30 10:00:01 UTC")
	assert.Contains(t, out, "Looking into it.")
	assert.Contains(t, out, "(images: trace.png)")
}

func TestTablePrinterPrintTaskList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTaskList([]model.Task{taskFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Fix the import error")
	assert.Contains(t, out, "active")
}

func TestTablePrinterPrintTaskListEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTaskList(nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestTablePrinterPrintChecks(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintChecks([]model.CheckResult{
		{ID: "workspace_exists", Status: model.CheckStatusOK, Message: "workspace found"},
		{ID: "notebook_readable", Status: model.CheckStatusError, Message: "notebook missing"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "workspace_exists")
	assert.Contains(t, out, "1 ok, 0 warnings, 1 errors")
}

func TestJSONPrinterPrintTask(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintTask(taskFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"title": "Fix the import error"`)
	assert.Contains(t, out, `"status": "active"`)
	assert.Contains(t, out, `"role": "assistant"`)
	assert.Contains(t, out, `"images": [`)
}

func TestJSONPrinterPrintTaskList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintTaskList([]model.Task{taskFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"id": "01234567890ABCDEFGHIJKLMNOP"`)
	assert.Contains(t, out, `"messages": 2`)
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}

func TestJSONPrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message": "ok"`)
}
