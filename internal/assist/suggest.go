package assist

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskai/internal/service"
)

var (
	purchaseVerbs = regexp.MustCompile(`(?i)buy|get|shop for`)
	documentVerbs = regexp.MustCompile(`(?i)write|create|prepare`)
)

// SampleTasks derives structured task suggestions from free text using
// fixed keyword patterns. It stands in for the AI service when no
// remote assistant is configured; the patterns mirror what the service
// would produce for common phrasings.
func SampleTasks(input string, now time.Time) []service.Task {
	lower := strings.ToLower(input)
	var tasks []service.Task

	if strings.Contains(lower, "meet") || strings.Contains(lower, "call") {
		due := now.Add(3 * 24 * time.Hour)
		tasks = append(tasks, newSuggestion(
			"Schedule: "+input,
			"Setup meeting with calendar invite",
			service.PriorityMedium,
			&due,
			now,
			"meeting",
		))
	}

	if strings.Contains(lower, "buy") || strings.Contains(lower, "shop") || strings.Contains(lower, "get") {
		subject := strings.TrimSpace(purchaseVerbs.ReplaceAllString(input, ""))
		tasks = append(tasks, newSuggestion(
			"Purchase: "+subject,
			"Remember to buy "+subject,
			service.PriorityLow,
			nil,
			now,
			"shopping",
		))
	}

	if strings.Contains(lower, "write") || strings.Contains(lower, "create") || strings.Contains(lower, "prepare") {
		due := now.Add(2 * 24 * time.Hour)
		subject := strings.TrimSpace(documentVerbs.ReplaceAllString(input, ""))
		tasks = append(tasks, newSuggestion(
			"Document: "+input,
			"Create document for "+subject,
			service.PriorityHigh,
			&due,
			now,
			"work", "document",
		))
	}

	if len(tasks) == 0 {
		tasks = append(tasks, newSuggestion(input, "", service.PriorityMedium, nil, now))
	}
	return tasks
}

func newSuggestion(title, description string, priority service.Priority, due *time.Time, now time.Time, tags ...string) service.Task {
	return service.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		DueDate:     due,
		Status:      service.StatusTodo,
		Priority:    priority,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
