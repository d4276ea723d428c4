package lib_test

import (
	"context"
	"fmt"
	"log"

	"github.com/Navteca/cline/pkg/lib"
)

// Demonstrates the basic task lifecycle: start a task, exchange messages,
// and complete it.
func Example_basicUsage() {
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	task, err := client.StartTask(ctx, "Review my data loading code")
	if err != nil {
		log.Fatal(err)
	}

	reply, err := client.SendMessage(ctx, "Why is the second cell slow?", nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply.Content)

	if err := client.CompleteTask(ctx, task.ID); err != nil {
		log.Fatal(err)
	}
}

// Demonstrates wiring a custom responder instead of the canned placeholder.
func Example_customResponder() {
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{
		Assistant: lib.AssistantConfig{
			Provider: lib.APIProviderOpenAI,
			Model:    "gpt-4o",
		},
		Responder: func(ctx context.Context, task lib.Task, m lib.Message, cfg lib.AssistantConfig) (string, error) {
			// A real integration would call the configured backend here.
			return fmt.Sprintf("model %s would answer %q", cfg.Model, m.Content), nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	if _, err := client.StartTask(ctx, "Explain this traceback"); err != nil {
		log.Fatal(err)
	}

	reply, err := client.SendMessage(ctx, "KeyError: 'user_id'", nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply.Content)
}

// Demonstrates reading stored task history, including tasks created by the
// CLI or previous processes.
func Example_taskHistory() {
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	completed := lib.TaskStatusCompleted
	tasks, err := client.ListTasks(ctx, &lib.ListTasksOpts{Status: &completed})
	if err != nil {
		log.Fatal(err)
	}

	for _, t := range tasks {
		fmt.Printf("%s %s (%d messages)\n", t.ID, t.Title, len(t.Messages))
	}
}
