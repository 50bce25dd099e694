// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskai/internal/service"
)

// DueDateFormat renders day-granularity due dates.
const DueDateFormat = "Jan 2, 2006"

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  {TITLE}  ({meta})\n" where meta collects priority,
// due date and non-TODO status.
func FormatTask(w io.Writer, num int, task service.Task) {
	title := normalizeTitle(task.Title)
	fmt.Fprintf(w, "%4d  %s%s\n", num, title, taskMeta(task))
}

// FormatSuggestion formats a suggested task, including its tags.
func FormatSuggestion(w io.Writer, num int, task service.Task) {
	title := normalizeTitle(task.Title)
	suffix := taskMeta(task)
	if len(task.Tags) > 0 {
		suffix += "  #" + strings.Join(task.Tags, " #")
	}
	fmt.Fprintf(w, "%4d  %s%s\n", num, title, suffix)
	if task.Description != "" {
		fmt.Fprintf(w, "      %s\n", task.Description)
	}
}

// FormatUser formats the whoami output.
func FormatUser(w io.Writer, user service.User) {
	if user.Name != "" {
		fmt.Fprintf(w, "%s <%s>\n", user.Name, user.Email)
		return
	}
	fmt.Fprintln(w, user.Email)
}

func taskMeta(task service.Task) string {
	var meta []string
	if task.Priority != "" {
		meta = append(meta, strings.ToLower(string(task.Priority)))
	}
	if task.DueDate != nil {
		meta = append(meta, "due "+task.DueDate.Format(DueDateFormat))
	}
	switch task.Status {
	case service.StatusInProgress:
		meta = append(meta, "in progress")
	case service.StatusDone:
		meta = append(meta, "done")
	}
	if len(meta) == 0 {
		return ""
	}
	return "  (" + strings.Join(meta, ", ") + ")"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
