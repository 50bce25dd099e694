// Package service defines the backend-agnostic types and interfaces for
// task operations.
package service

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ParseStatus parses a status value (case-insensitive).
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TODO":
		return StatusTodo, nil
	case "IN_PROGRESS", "IN-PROGRESS", "INPROGRESS":
		return StatusInProgress, nil
	case "DONE":
		return StatusDone, nil
	}
	return "", fmt.Errorf("invalid status: %s", s)
}

// Priority is the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority parses a priority value (case-insensitive).
func ParsePriority(s string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return PriorityLow, nil
	case "MEDIUM", "MED":
		return PriorityMedium, nil
	case "HIGH":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}

// Task represents a single task item. Tasks are owned by the remote
// persistence service; clients hold read-through copies.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Filters narrows a task fetch. All fields are optional; a zero field
// means unfiltered on that dimension. Set fields combine with AND
// semantics.
type Filters struct {
	Status   Status
	Priority Priority
	DueDate  *time.Time
	Search   string
}

// Draft holds the fields a client supplies when creating a task.
type Draft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// Patch is a partial task update. Nil fields are left unchanged.
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// User is the authenticated account returned by the auth service.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	GoogleID  string    `json:"googleId,omitempty"`
}
