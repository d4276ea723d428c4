package notebook_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navteca/cline/internal/model"
	"github.com/Navteca/cline/internal/notebook"
)

func TestDecode(t *testing.T) {
	tests := map[string]struct {
		data   string
		expNB  model.Notebook
		expErr bool
	}{
		"Notebook with list sources should join lines": {
			data: `{
				"cells": [
					{"cell_type": "code", "source": ["import os\n", "print(os.getcwd())\n"], "metadata": {}},
					{"cell_type": "markdown", "source": ["# Title\n"], "metadata": {}}
				],
				"metadata": {"language_info": {"name": "python"}},
				"nbformat": 4
			}`,
			expNB: model.Notebook{
				Path:     "nb.ipynb",
				Language: "python",
				Cells: []model.NotebookCell{
					{Type: model.CellTypeCode, Source: "import os\nprint(os.getcwd())\n"},
					{Type: model.CellTypeMarkdown, Source: "# Title\n"},
				},
			},
		},

		"Notebook with string sources should be kept verbatim": {
			data: `{
				"cells": [{"cell_type": "code", "source": "x = 1", "metadata": {}}],
				"metadata": {},
				"nbformat": 4
			}`,
			expNB: model.Notebook{
				Path:  "nb.ipynb",
				Cells: []model.NotebookCell{{Type: model.CellTypeCode, Source: "x = 1"}},
			},
		},

		"Kernelspec language should be used when language_info is missing": {
			data: `{
				"cells": [],
				"metadata": {"kernelspec": {"language": "julia"}},
				"nbformat": 4
			}`,
			expNB: model.Notebook{
				Path:     "nb.ipynb",
				Language: "julia",
				Cells:    []model.NotebookCell{},
			},
		},

		"Cell metadata language override should be decoded": {
			data: `{
				"cells": [
					{"cell_type": "code", "source": "SELECT 1;", "metadata": {"language": "sql"}},
					{"cell_type": "code", "source": "console.log(1)", "metadata": {"vscode": {"languageId": "javascript"}}}
				],
				"metadata": {},
				"nbformat": 4
			}`,
			expNB: model.Notebook{
				Path: "nb.ipynb",
				Cells: []model.NotebookCell{
					{Type: model.CellTypeCode, Source: "SELECT 1;", Language: "sql"},
					{Type: model.CellTypeCode, Source: "console.log(1)", Language: "javascript"},
				},
			},
		},

		"Invalid JSON should return an error": {
			data:   `{"cells": [`,
			expErr: true,
		},

		"Invalid source type should return an error": {
			data: `{
				"cells": [{"cell_type": "code", "source": 42, "metadata": {}}],
				"metadata": {},
				"nbformat": 4
			}`,
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			nb, err := notebook.Decode("nb.ipynb", strings.NewReader(tt.data))

			if tt.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expNB, *nb)
			}
		})
	}
}
