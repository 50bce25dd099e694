// Package assist contains the deterministic task query engine, the chat
// transcript type and the local task suggestion sampler behind the AI
// panels.
package assist

import (
	"fmt"
	"strings"
	"time"

	"taskai/internal/service"
)

// DueDateFormat renders day-granularity due dates in answers.
const DueDateFormat = "Jan 2, 2006"

// fallbackAnswer is returned when no intent keyword matches.
const fallbackAnswer = "Sorry, I couldn't understand your question. Try asking about tasks that are due today, overdue, high priority, or completed."

// Answer classifies a free-text question into a fixed set of intents
// and computes the answer from the task collection. It is a pure
// function of its inputs and the current day: no network calls, no
// side effects.
func Answer(question string, tasks []service.Task) string {
	return AnswerAt(question, tasks, time.Now())
}

// AnswerAt is Answer with an explicit clock.
//
// Intents are checked in a fixed order and the first matching keyword
// set wins, so questions containing overlapping keywords resolve
// deterministically. Matching is case-insensitive substring
// containment.
func AnswerAt(question string, tasks []service.Task, now time.Time) string {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "due today", "due for today"):
		return answerDueToday(tasks, now)
	case containsAny(q, "high priority", "important tasks"):
		return answerHighPriority(tasks)
	case containsAny(q, "completed", "finished"):
		return answerCompleted(tasks)
	case containsAny(q, "overdue", "late"):
		return answerOverdue(tasks, now)
	}
	return fallbackAnswer
}

func answerDueToday(tasks []service.Task, now time.Time) string {
	today := dayOf(now, now.Location())

	var due []service.Task
	for _, t := range tasks {
		if t.DueDate != nil && dayOf(*t.DueDate, now.Location()).Equal(today) {
			due = append(due, t)
		}
	}

	if len(due) == 0 {
		return "You don't have any tasks due today. Enjoy your day!"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have %d task%s due today:\n\n", len(due), plural(len(due)))
	for i, t := range due {
		fmt.Fprintf(&sb, "%d. %s", i+1, t.Title)
		if t.Priority != "" {
			fmt.Fprintf(&sb, " (%s priority)", strings.ToLower(string(t.Priority)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func answerHighPriority(tasks []service.Task) string {
	var high []service.Task
	for _, t := range tasks {
		if t.Priority == service.PriorityHigh && t.Status != service.StatusDone {
			high = append(high, t)
		}
	}

	if len(high) == 0 {
		return "You don't have any high priority tasks at the moment."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have %d high priority task%s:\n\n", len(high), plural(len(high)))
	for i, t := range high {
		fmt.Fprintf(&sb, "%d. %s", i+1, t.Title)
		if t.DueDate != nil {
			fmt.Fprintf(&sb, " (Due: %s)", t.DueDate.Format(DueDateFormat))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func answerCompleted(tasks []service.Task) string {
	var done []service.Task
	for _, t := range tasks {
		if t.Status == service.StatusDone {
			done = append(done, t)
		}
	}

	if len(done) == 0 {
		return "You haven't completed any tasks yet. Keep going!"
	}

	// Last five in collection order, most recently added first.
	start := len(done) - 5
	if start < 0 {
		start = 0
	}
	recent := done[start:]

	var sb strings.Builder
	fmt.Fprintf(&sb, "You've completed %d task%s in total.\n\nMost recently completed:\n", len(done), plural(len(done)))
	for i := range recent {
		t := recent[len(recent)-1-i]
		fmt.Fprintf(&sb, "%d. %s\n", i+1, t.Title)
	}
	return sb.String()
}

func answerOverdue(tasks []service.Task, now time.Time) string {
	today := dayOf(now, now.Location())

	var overdue []service.Task
	for _, t := range tasks {
		if t.DueDate == nil || t.Status == service.StatusDone {
			continue
		}
		if dayOf(*t.DueDate, now.Location()).Before(today) {
			overdue = append(overdue, t)
		}
	}

	if len(overdue) == 0 {
		return "Great job! You don't have any overdue tasks."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have %d overdue task%s:\n\n", len(overdue), plural(len(overdue)))
	for i, t := range overdue {
		fmt.Fprintf(&sb, "%d. %s (Due: %s)\n", i+1, t.Title, t.DueDate.Format(DueDateFormat))
	}
	return sb.String()
}

// containsAny reports whether q contains any of the keywords.
func containsAny(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// dayOf truncates a timestamp to midnight in the given location.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
