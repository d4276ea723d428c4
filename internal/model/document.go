package model

import (
	"fmt"
	"strings"
)

// DefaultNotebookLanguage is the language assumed when neither the notebook
// nor any of its cells declares one.
const DefaultNotebookLanguage = "python"

// Document is a flattened view of the host's focused document.
type Document struct {
	Path     string
	Content  string
	Language string
}

// CellType represents the kind of a notebook cell.
type CellType string

const (
	CellTypeCode     CellType = "code"
	CellTypeMarkdown CellType = "markdown"
	CellTypeRaw      CellType = "raw"
)

// NotebookCell is a single cell of a notebook in display order.
type NotebookCell struct {
	Type   CellType
	Source string
	// Language is the per-cell language override, empty when the cell
	// inherits the notebook language.
	Language string
}

// Notebook is a parsed notebook document.
type Notebook struct {
	Path string
	// Language is the notebook-level kernel language, may be empty.
	Language string
	Cells    []NotebookCell
}

// Document flattens the notebook into a Document: all code cells in display
// order, each prefixed with a cell marker. The language is the first per-cell
// override found; later overrides do not change it. Without overrides the
// notebook language is used, falling back to DefaultNotebookLanguage.
func (n Notebook) Document() Document {
	var b strings.Builder
	language := ""

	for i, cell := range n.Cells {
		if cell.Type != CellTypeCode {
			continue
		}

		if language == "" && cell.Language != "" {
			language = cell.Language
		}

		fmt.Fprintf(&b, "# Cell %d\n%s\n\n", i+1, strings.TrimRight(cell.Source, "\n"))
	}

	if language == "" {
		language = n.Language
	}
	if language == "" {
		language = DefaultNotebookLanguage
	}

	return Document{
		Path:     n.Path,
		Content:  strings.TrimRight(b.String(), "\n"),
		Language: language,
	}
}

// CodeCellCount returns the number of code cells in the notebook.
func (n Notebook) CodeCellCount() int {
	count := 0
	for _, cell := range n.Cells {
		if cell.Type == CellTypeCode {
			count++
		}
	}
	return count
}
