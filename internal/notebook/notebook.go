// Package notebook decodes Jupyter .ipynb documents into the domain model.
package notebook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Navteca/cline/internal/model"
)

// Decode parses an .ipynb document from r and returns a validated domain
// model. The path is recorded on the returned notebook.
func Decode(path string, r io.Reader) (*model.Notebook, error) {
	var nb ipynbFile
	if err := json.NewDecoder(r).Decode(&nb); err != nil {
		return nil, fmt.Errorf("parsing notebook JSON: %w", err)
	}

	return nb.toModel(path), nil
}

// ipynbFile represents the wire structure of a Jupyter notebook file.
type ipynbFile struct {
	Cells    []ipynbCell   `json:"cells"`
	Metadata ipynbMetadata `json:"metadata"`
	NBFormat int           `json:"nbformat"`
}

type ipynbMetadata struct {
	Kernelspec struct {
		Language string `json:"language"`
	} `json:"kernelspec"`
	LanguageInfo struct {
		Name string `json:"name"`
	} `json:"language_info"`
}

type ipynbCell struct {
	CellType string            `json:"cell_type"`
	Source   multilineSource   `json:"source"`
	Metadata ipynbCellMetadata `json:"metadata"`
}

type ipynbCellMetadata struct {
	// Language is the per-cell language override some frontends write.
	Language string `json:"language"`
	VSCode   struct {
		LanguageID string `json:"languageId"`
	} `json:"vscode"`
}

func (c ipynbCell) language() string {
	if c.Metadata.Language != "" {
		return c.Metadata.Language
	}
	return c.Metadata.VSCode.LanguageID
}

// multilineSource handles the two encodings of cell sources in the ipynb
// format: a single string or a list of line strings.
type multilineSource string

func (s *multilineSource) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = multilineSource(single)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("cell source must be a string or a list of strings: %w", err)
	}

	*s = multilineSource(strings.Join(lines, ""))
	return nil
}

func (f ipynbFile) toModel(path string) *model.Notebook {
	language := f.Metadata.LanguageInfo.Name
	if language == "" {
		language = f.Metadata.Kernelspec.Language
	}

	nb := &model.Notebook{
		Path:     path,
		Language: language,
		Cells:    make([]model.NotebookCell, 0, len(f.Cells)),
	}

	for _, cell := range f.Cells {
		nb.Cells = append(nb.Cells, model.NotebookCell{
			Type:     model.CellType(cell.CellType),
			Source:   string(cell.Source),
			Language: cell.language(),
		})
	}

	return nb
}
