// Package service defines the backend-agnostic types and interfaces for
// task operations.
package service

import "context"

// Service defines the interface for persistence backend operations.
// All remote task calls go through this interface. Commands never build
// HTTP requests directly.
type Service interface {
	// ListTasks returns the task collection matching the filters, in
	// server order (no client-side sorting). All filter fields are
	// optional and combine with AND semantics.
	ListTasks(ctx context.Context, filters Filters) ([]Task, error)

	// CreateTask creates a new task from the draft and returns the
	// server-issued task.
	CreateTask(ctx context.Context, draft Draft) (Task, error)

	// UpdateTask applies a partial update to the task with the given ID
	// and returns the updated task.
	UpdateTask(ctx context.Context, id string, patch Patch) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id string) error
}

// Assistant is the AI collaborator reachable over a request/response
// interface. Implementations may call the project's AI service or a
// model provider directly.
type Assistant interface {
	// SuggestTasks converts a natural-language description into
	// structured task suggestions.
	SuggestTasks(ctx context.Context, input string) ([]Task, error)

	// WeeklySummary produces a prose summary of the given task
	// collection.
	WeeklySummary(ctx context.Context, tasks []Task) (string, error)
}
