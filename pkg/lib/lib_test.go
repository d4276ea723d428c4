package lib_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navteca/cline/pkg/lib"
)

func newTestClient(t *testing.T, cfg lib.Config) *lib.Client {
	t.Helper()

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(t.TempDir(), "cline.db")
	}

	client, err := lib.New(context.TODO(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestClientConversation(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newTestClient(t, lib.Config{
		Assistant: lib.AssistantConfig{Provider: lib.APIProviderOpenAI, Model: "gpt-4o"},
		Responder: func(_ context.Context, task lib.Task, m lib.Message, cfg lib.AssistantConfig) (string, error) {
			return fmt.Sprintf("[%s] %d messages so far, you said %q", cfg.Model, len(task.Messages), m.Content), nil
		},
	})

	task, err := client.StartTask(context.TODO(), "Review my notebook")
	require.NoError(err)
	assert.Equal("Review my notebook", task.Title)
	assert.Equal(lib.TaskStatusActive, task.Status)
	require.Len(task.Messages, 1)

	reply, err := client.SendMessage(context.TODO(), "Why is cell two slow?", nil)
	require.NoError(err)
	assert.Equal(lib.RoleAssistant, reply.Role)
	assert.Equal(`[gpt-4o] 2 messages so far, you said "Why is cell two slow?"`, reply.Content)

	current, ok := client.CurrentTask()
	require.True(ok)
	assert.Equal(task.ID, current.ID)
	assert.Len(current.Messages, 3)

	err = client.CompleteTask(context.TODO(), task.ID)
	require.NoError(err)

	_, ok = client.CurrentTask()
	assert.False(ok)

	// The stored task reflects the finished conversation.
	stored, err := client.GetTask(context.TODO(), task.ID)
	require.NoError(err)
	assert.Equal(lib.TaskStatusCompleted, stored.Status)
	assert.Len(stored.Messages, 3)
}

func TestClientSendMessageWithoutTask(t *testing.T) {
	assert := assert.New(t)

	client := newTestClient(t, lib.Config{})

	_, err := client.SendMessage(context.TODO(), "hello", nil)
	assert.ErrorIs(err, lib.ErrNoActiveTask)
}

func TestClientErrorMapping(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newTestClient(t, lib.Config{})

	_, err := client.GetTask(context.TODO(), "missing")
	assert.ErrorIs(err, lib.ErrNotFound)

	task, err := client.StartTask(context.TODO(), "some work")
	require.NoError(err)

	require.NoError(client.FailTask(context.TODO(), task.ID, fmt.Errorf("kernel died")))
	assert.ErrorIs(client.CompleteTask(context.TODO(), task.ID), lib.ErrNotValid)
}

func TestClientListTasks(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dbPath := filepath.Join(t.TempDir(), "cline.db")
	client := newTestClient(t, lib.Config{DBPath: dbPath})

	t1, err := client.StartTask(context.TODO(), "first")
	require.NoError(err)
	t2, err := client.StartTask(context.TODO(), "second")
	require.NoError(err)

	require.NoError(client.CompleteTask(context.TODO(), t1.ID))

	all, err := client.ListTasks(context.TODO(), nil)
	require.NoError(err)
	require.Len(all, 2)

	completed := lib.TaskStatusCompleted
	filtered, err := client.ListTasks(context.TODO(), &lib.ListTasksOpts{Status: &completed})
	require.NoError(err)
	require.Len(filtered, 1)
	assert.Equal(t1.ID, filtered[0].ID)

	// Another client over the same database sees the stored history.
	other := newTestClient(t, lib.Config{DBPath: dbPath})
	stored, err := other.ListTasks(context.TODO(), nil)
	require.NoError(err)
	assert.Len(stored, 2)

	_, ok := other.CurrentTask()
	assert.False(ok)
	_ = t2
}

func TestClientSnapshots(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newTestClient(t, lib.Config{})

	task, err := client.StartTask(context.TODO(), "first")
	require.NoError(err)

	// Mutating the returned snapshot must not leak into the client state.
	task.Title = "mutated"
	task.Messages[0].Content = "mutated"

	current, ok := client.CurrentTask()
	require.True(ok)
	assert.Equal("first", current.Title)
	assert.Equal("first", current.Messages[0].Content)
}
