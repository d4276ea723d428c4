package local_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navteca/cline/internal/host"
	"github.com/Navteca/cline/internal/host/local"
	"github.com/Navteca/cline/internal/model"
)

const testNotebook = `{
  "metadata": {"kernelspec": {"language": "python"}},
  "cells": [
    {"cell_type": "code", "source": ["import pandas as pd"]},
    {"cell_type": "markdown", "source": "# Training"},
    {"cell_type": "code", "source": "df = pd.read_csv('data.csv')"}
  ]
}`

func newTestProvider(t *testing.T, cfg local.ProviderConfig) *local.Provider {
	t.Helper()

	if cfg.WorkspaceDir == "" {
		cfg.WorkspaceDir = t.TempDir()
	}

	p, err := local.NewProvider(cfg)
	require.NoError(t, err)
	return p
}

func TestProviderFiles(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	p := newTestProvider(t, local.ProviderConfig{CellIndex: -1})

	err := p.WriteFile(context.TODO(), "notes.txt", "hello")
	require.NoError(err)

	got, err := p.ReadFile(context.TODO(), "notes.txt")
	require.NoError(err)
	assert.Equal("hello", got)

	names, err := p.ListFiles(context.TODO(), ".")
	require.NoError(err)
	assert.Equal([]string{"notes.txt"}, names)
}

func TestProviderReadFileMissing(t *testing.T) {
	assert := assert.New(t)

	p := newTestProvider(t, local.ProviderConfig{CellIndex: -1})

	_, err := p.ReadFile(context.TODO(), "missing.py")

	var fileErr *model.FileOperationError
	assert.ErrorAs(err, &fileErr)
	assert.Equal("read", fileErr.Operation)
	assert.Contains(err.Error(), "missing.py")
}

func TestProviderShowProgress(t *testing.T) {
	tests := map[string]struct {
		fn     func(ctx context.Context) error
		expErr bool
	}{
		"A successful unit of work should not fail.": {
			fn:     func(ctx context.Context) error { return nil },
			expErr: false,
		},
		"A failing unit of work should surface its error.": {
			fn:     func(ctx context.Context) error { return fmt.Errorf("something broke") },
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			p := newTestProvider(t, local.ProviderConfig{CellIndex: -1})

			ran := false
			err := p.ShowProgress(context.TODO(), "working", func(ctx context.Context) error {
				ran = true
				return test.fn(ctx)
			})

			assert.True(ran)
			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func TestProviderExecuteCommand(t *testing.T) {
	tests := map[string]struct {
		command     []string
		expErr      bool
		expStdout   string
		expExitCode int
	}{
		"A successful command should populate stdout and a zero exit code.": {
			command:   []string{"sh", "-c", "echo hi"},
			expStdout: "hi\n",
		},
		"A failing command should report its exit code instead of an error.": {
			command:     []string{"sh", "-c", "exit 3"},
			expExitCode: 3,
		},
		"An empty command should fail.": {
			command: []string{},
			expErr:  true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			p := newTestProvider(t, local.ProviderConfig{CellIndex: -1})

			result, err := p.ExecuteCommand(context.TODO(), test.command)

			if test.expErr {
				assert.Error(err)
				return
			}

			require.NoError(err)
			assert.Equal(test.expStdout, result.Stdout)
			assert.Equal("", result.Stderr)
			assert.Equal(test.expExitCode, result.ExitCode)
		})
	}
}

func TestProviderNotebookContext(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	workspace := t.TempDir()
	err := os.WriteFile(filepath.Join(workspace, "train.ipynb"), []byte(testNotebook), 0o644)
	require.NoError(err)

	p := newTestProvider(t, local.ProviderConfig{
		WorkspaceDir: workspace,
		NotebookPath: "train.ipynb",
		CellIndex:    2,
		Selection:    "df.head()",
	})

	doc, err := p.ActiveDocument(context.TODO())
	require.NoError(err)
	assert.Equal("train.ipynb", doc.Path)
	assert.Equal("python", doc.Language)
	assert.Contains(doc.Content, "# Cell 1\nimport pandas as pd")
	assert.Contains(doc.Content, "# Cell 3\ndf = pd.read_csv('data.csv')")
	assert.NotContains(doc.Content, "# Training")

	cell, err := p.ActiveCell(context.TODO())
	require.NoError(err)
	assert.Equal(model.CellTypeCode, cell.Type)
	assert.Equal("df = pd.read_csv('data.csv')", cell.Source)

	selection, err := p.SelectedText(context.TODO())
	require.NoError(err)
	assert.Equal("df.head()", selection)
}

func TestProviderMissingContext(t *testing.T) {
	assert := assert.New(t)

	p := newTestProvider(t, local.ProviderConfig{CellIndex: -1})

	_, err := p.ActiveDocument(context.TODO())
	assert.ErrorIs(err, model.ErrNotFound)

	_, err = p.ActiveCell(context.TODO())
	assert.ErrorIs(err, model.ErrNotFound)

	_, err = p.SelectedText(context.TODO())
	assert.ErrorIs(err, model.ErrNotFound)
}

func TestProviderCheck(t *testing.T) {
	assert := assert.New(t)

	p := newTestProvider(t, local.ProviderConfig{CellIndex: -1, NotebookPath: "missing.ipynb"})

	results := p.Check(context.TODO())

	byID := map[string]model.CheckResult{}
	for _, r := range results {
		byID[r.ID] = r
	}
	assert.Equal(model.CheckStatusOK, byID["workspace_exists"].Status)
	assert.Equal(model.CheckStatusError, byID["notebook_readable"].Status)
	assert.True(model.HasErrors(results))
}

func TestProviderShowMessageNeverFails(t *testing.T) {
	p := newTestProvider(t, local.ProviderConfig{CellIndex: -1})

	// No return value to assert, the call must simply not panic.
	p.ShowMessage(context.TODO(), "heads up", host.SeverityWarning)
}
