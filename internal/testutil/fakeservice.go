// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"taskai/internal/service"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
}

// NewFakeService creates a new empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task. Zero-value status and priority default to
// TODO and MEDIUM, matching what the persistence service would do.
func (f *FakeService) AddTask(task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.ID == "" {
		task.ID = slug(task.Title)
	}
	if task.Status == "" {
		task.Status = service.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = service.PriorityMedium
	}
	f.tasks = append(f.tasks, task)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, filters service.Filters) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []service.Task
	for _, t := range f.tasks {
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		if filters.Priority != "" && t.Priority != filters.Priority {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		if filters.DueDate != nil {
			if t.DueDate == nil || !sameDay(*t.DueDate, *filters.DueDate) {
				continue
			}
		}
		result = append(result, t)
	}
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	task := service.Task{
		ID:          slug(draft.Title),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Status:      service.StatusTodo,
		Priority:    draft.Priority,
		Tags:        draft.Tags,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if task.Priority == "" {
		task.Priority = service.PriorityMedium
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, patch service.Patch) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.DueDate != nil {
			t.DueDate = patch.DueDate
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if len(patch.Tags) > 0 {
			t.Tags = patch.Tags
		}
		t.UpdatedAt = time.Now()
		return *t, nil
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Tasks returns a copy of the current task collection.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// FakeAssistant is a canned implementation of service.Assistant.
type FakeAssistant struct {
	Suggestions []service.Task
	Summary     string

	SuggestErr error
	SummaryErr error
}

// SuggestTasks implements service.Assistant.
func (f *FakeAssistant) SuggestTasks(ctx context.Context, input string) ([]service.Task, error) {
	if f.SuggestErr != nil {
		return nil, f.SuggestErr
	}
	return f.Suggestions, nil
}

// WeeklySummary implements service.Assistant.
func (f *FakeAssistant) WeeklySummary(ctx context.Context, tasks []service.Task) (string, error) {
	if f.SummaryErr != nil {
		return "", f.SummaryErr
	}
	return f.Summary, nil
}

func slug(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
