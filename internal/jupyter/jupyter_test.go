package jupyter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Navteca/cline/internal/assistant"
	"github.com/Navteca/cline/internal/host/hostmock"
	"github.com/Navteca/cline/internal/jupyter"
	"github.com/Navteca/cline/internal/model"
)

func TestServiceOperations(t *testing.T) {
	tests := map[string]struct {
		mock        func(m *hostmock.MockProvider)
		op          func(ctx context.Context, svc *jupyter.Service) (*model.Message, error)
		expErr      error
		expContains string
	}{
		"Analyzing a notebook should forward the flattened document to the assistant.": {
			mock: func(m *hostmock.MockProvider) {
				m.On("ActiveDocument", mock.Anything).Once().Return(&model.Document{
					Path:     "train.ipynb",
					Content:  "# Cell 1\nimport pandas as pd",
					Language: "python",
				}, nil)
				m.On("ShowProgress", mock.Anything, "Analyzing notebook", mock.Anything).Once().Return(nil)
			},
			op: func(ctx context.Context, svc *jupyter.Service) (*model.Message, error) {
				return svc.AnalyzeNotebook(ctx)
			},
			expContains: "train.ipynb",
		},
		"Analyzing without a focused document should fail with missing context.": {
			mock: func(m *hostmock.MockProvider) {
				m.On("ActiveDocument", mock.Anything).Once().Return(nil, model.ErrNotFound)
			},
			op: func(ctx context.Context, svc *jupyter.Service) (*model.Message, error) {
				return svc.AnalyzeNotebook(ctx)
			},
			expErr: model.ErrMissingContext,
		},
		"Explaining a cell should forward the cell source to the assistant.": {
			mock: func(m *hostmock.MockProvider) {
				m.On("ActiveCell", mock.Anything).Once().Return(&model.NotebookCell{
					Type:     model.CellTypeCode,
					Source:   "df.describe()",
					Language: "python",
				}, nil)
				m.On("ShowProgress", mock.Anything, "Explaining cell", mock.Anything).Once().Return(nil)
			},
			op: func(ctx context.Context, svc *jupyter.Service) (*model.Message, error) {
				return svc.ExplainCell(ctx)
			},
			expContains: "df.describe()",
		},
		"Explaining without a selected cell should fail with missing context.": {
			mock: func(m *hostmock.MockProvider) {
				m.On("ActiveCell", mock.Anything).Once().Return(nil, model.ErrNotFound)
			},
			op: func(ctx context.Context, svc *jupyter.Service) (*model.Message, error) {
				return svc.ExplainCell(ctx)
			},
			expErr: model.ErrMissingContext,
		},
		"Optimizing a selection should forward the selected code to the assistant.": {
			mock: func(m *hostmock.MockProvider) {
				m.On("SelectedText", mock.Anything).Once().Return("for i in range(len(xs)): total += xs[i]", nil)
				m.On("ShowProgress", mock.Anything, "Optimizing selection", mock.Anything).Once().Return(nil)
			},
			op: func(ctx context.Context, svc *jupyter.Service) (*model.Message, error) {
				return svc.OptimizeSelection(ctx)
			},
			expContains: "total += xs[i]",
		},
		"Optimizing with an empty selection should fail with missing context.": {
			mock: func(m *hostmock.MockProvider) {
				m.On("SelectedText", mock.Anything).Once().Return("", nil)
			},
			op: func(ctx context.Context, svc *jupyter.Service) (*model.Message, error) {
				return svc.OptimizeSelection(ctx)
			},
			expErr: model.ErrMissingContext,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			responder := assistant.ResponderFunc(func(_ context.Context, _ *model.Task, m model.Message, _ model.AssistantConfig) (string, error) {
				return "reply to: " + m.Content, nil
			})
			core, err := assistant.NewService(assistant.ServiceConfig{Responder: responder})
			require.NoError(err)

			mprovider := hostmock.NewMockProvider(t)
			test.mock(mprovider)

			svc, err := jupyter.NewService(jupyter.ServiceConfig{Assistant: core, Provider: mprovider})
			require.NoError(err)

			reply, err := test.op(context.TODO(), svc)

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				// Missing context never mutates the assistant state.
				assert.Empty(core.Tasks())
				assert.Nil(core.CurrentTask())
				return
			}

			require.NoError(err)
			assert.Equal(model.RoleAssistant, reply.Role)
			assert.Contains(reply.Content, test.expContains)

			// The operation auto-started a task and recorded the exchange.
			task := core.CurrentTask()
			require.NotNil(task)
			require.Len(task.Messages, 2)
			assert.Equal(model.RoleUser, task.Messages[0].Role)
			assert.Contains(task.Messages[0].Content, test.expContains)
		})
	}
}

func TestServiceReusesCurrentTask(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	core, err := assistant.NewService(assistant.ServiceConfig{})
	require.NoError(err)

	task, err := core.StartNewTask(context.TODO(), "review my notebook")
	require.NoError(err)

	mprovider := hostmock.NewMockProvider(t)
	mprovider.On("SelectedText", mock.Anything).Once().Return("x = 1", nil)
	mprovider.On("ShowProgress", mock.Anything, "Optimizing selection", mock.Anything).Once().Return(nil)

	svc, err := jupyter.NewService(jupyter.ServiceConfig{Assistant: core, Provider: mprovider})
	require.NoError(err)

	_, err = svc.OptimizeSelection(context.TODO())
	require.NoError(err)

	require.Len(core.Tasks(), 1)
	assert.Same(task, core.CurrentTask())
}
