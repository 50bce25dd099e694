// Package openaiassist implements the assistant interface by calling
// OpenAI directly, bypassing the project's AI service.
package openaiassist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"taskai/internal/service"
)

const suggestPrompt = `You convert a user's free-text description into a JSON array of task objects.
Each object has: "title" (string, required), "description" (string),
"dueDate" (YYYY-MM-DD), "priority" ("LOW", "MEDIUM" or "HIGH"),
"tags" (array of strings).
Respond with the JSON array only, no prose and no code fences.`

// Client implements service.Assistant using the OpenAI chat API.
type Client struct {
	api   *openai.Client
	model string
	now   func() time.Time
}

// New creates a direct-OpenAI assistant. An empty model selects
// gpt-4o-mini.
func New(apiKey, model string) *Client {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
		now:   time.Now,
	}
}

// suggestedTask is the wire shape the model is asked to produce.
type suggestedTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

// SuggestTasks implements service.Assistant.
func (c *Client) SuggestTasks(ctx context.Context, input string) ([]service.Task, error) {
	content, err := c.complete(ctx, suggestPrompt, input)
	if err != nil {
		return nil, err
	}

	var raw []suggestedTask
	if err := json.Unmarshal([]byte(stripFences(content)), &raw); err != nil {
		return nil, fmt.Errorf("model returned unparseable suggestions: %w", err)
	}

	now := c.now()
	tasks := make([]service.Task, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s.Title) == "" {
			continue
		}
		t := service.Task{
			ID:          uuid.NewString(),
			Title:       s.Title,
			Description: s.Description,
			Status:      service.StatusTodo,
			Priority:    service.PriorityMedium,
			Tags:        s.Tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if p, err := service.ParsePriority(s.Priority); err == nil {
			t.Priority = p
		}
		if s.DueDate != "" {
			if due, err := time.ParseInLocation("2006-01-02", s.DueDate, time.Local); err == nil {
				t.DueDate = &due
			}
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// WeeklySummary implements service.Assistant.
func (c *Client) WeeklySummary(ctx context.Context, tasks []service.Task) (string, error) {
	var sb strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&sb, "- %s [%s, %s priority", t.Title, t.Status, strings.ToLower(string(t.Priority)))
		if t.DueDate != nil {
			fmt.Fprintf(&sb, ", due %s", t.DueDate.Format("Jan 2, 2006"))
		}
		sb.WriteString("]\n")
	}
	if sb.Len() == 0 {
		sb.WriteString("(no tasks)\n")
	}

	return c.complete(ctx,
		"You write a short weekly summary of a user's task list: progress, what is overdue, and what needs attention next. Plain text, a few sentences.",
		sb.String())
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// stripFences removes a markdown code fence if the model added one
// despite the prompt.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
