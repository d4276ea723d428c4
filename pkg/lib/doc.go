// Package lib provides a Go SDK for embedding the cline assistant core in
// other applications.
//
// This package allows applications to manage assistant tasks and
// conversations without shelling out to the cline CLI binary. It is useful
// for scripting, automation, and building tools on top of cline.
//
// # Quick Start
//
// Create a client, start a task and exchange messages:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Start a task.
//	task, err := client.StartTask(ctx, "Review my data loading code")
//
//	// Exchange messages on the current task.
//	reply, err := client.SendMessage(ctx, "Why is the second cell slow?", nil)
//	fmt.Println(reply.Content)
//
//	// Finish the task.
//	client.CompleteTask(ctx, task.ID)
//
// # Replies
//
// By default replies are synthesized by a canned placeholder responder. Wire
// a real model backend by setting [Config].Responder: the function receives
// the task so far, the new user message and the assistant configuration, and
// returns the reply text.
//
// # Task history
//
// Tasks are persisted in a SQLite database (~/.cline/cline.db by default).
// [Client.ListTasks] and [Client.GetTask] read the stored history, including
// tasks created by previous processes and by the CLI.
//
// # Errors
//
// Operations return errors that can be tested with errors.Is against the
// package sentinels: [ErrNotFound], [ErrNotValid], [ErrNoActiveTask].
package lib
