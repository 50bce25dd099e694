// Package resttasks implements the service interfaces against the
// remote persistence and AI HTTP services.
package resttasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskai/internal/config"
	"taskai/internal/service"
	"taskai/internal/session"
)

const (
	// APITimeout is the timeout for remote calls.
	APITimeout = 10 * time.Second
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("not found")

// Client implements service.Service and service.Assistant over HTTP.
// It must be constructed with the session manager's client so every
// request carries the bearer token and 401 responses end the session.
type Client struct {
	todoURL string
	aiURL   string
	httpc   *http.Client
}

// New creates a new REST client from the configured service URLs.
func New(cfg *config.Config, httpc *http.Client) *Client {
	return &Client{
		todoURL: strings.TrimRight(cfg.TodoURL, "/"),
		aiURL:   strings.TrimRight(cfg.AIURL, "/"),
		httpc:   httpc,
	}
}

// ListTasks returns the task collection matching the filters.
// Status, priority and search travel as query parameters; the due-date
// dimension is applied client-side at day granularity since the wire
// contract does not carry it.
func (c *Client) ListTasks(ctx context.Context, filters service.Filters) ([]service.Task, error) {
	params := url.Values{}
	if filters.Status != "" {
		params.Set("status", string(filters.Status))
	}
	if filters.Priority != "" {
		params.Set("priority", string(filters.Priority))
	}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}

	endpoint := c.todoURL + "/tasks"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var envelope struct {
		Tasks []service.Task `json:"tasks"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, err
	}

	tasks := envelope.Tasks
	if filters.DueDate != nil {
		want := *filters.DueDate
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.DueDate != nil && sameDay(*t.DueDate, want) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	return tasks, nil
}

// CreateTask creates a new task from the draft.
func (c *Client) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	var task service.Task
	err := c.doJSON(ctx, http.MethodPost, c.todoURL+"/tasks", draft, &task)
	return task, err
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.Patch) (service.Task, error) {
	var task service.Task
	err := c.doJSON(ctx, http.MethodPut, c.todoURL+"/tasks/"+url.PathEscape(id), patch, &task)
	return task, err
}

// DeleteTask deletes a task by ID. The server's status message is
// discarded.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	var msg struct {
		Message string `json:"message"`
	}
	return c.doJSON(ctx, http.MethodDelete, c.todoURL+"/tasks/"+url.PathEscape(id), nil, &msg)
}

// SuggestTasks asks the AI service to convert free text into task
// suggestions.
func (c *Client) SuggestTasks(ctx context.Context, input string) ([]service.Task, error) {
	if c.aiURL == "" {
		return nil, errors.New("no AI service configured")
	}
	var tasks []service.Task
	err := c.doJSON(ctx, http.MethodPost, c.aiURL+"/ai/suggest", map[string]string{"input": input}, &tasks)
	return tasks, err
}

// WeeklySummary fetches the summary from the AI service. The task
// collection is ignored: the service derives the summary from the
// caller's own tasks.
func (c *Client) WeeklySummary(ctx context.Context, _ []service.Task) (string, error) {
	if c.aiURL == "" {
		return "", errors.New("no AI service configured")
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.aiURL+"/ai/summary", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", wrapError(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// The service returns either a JSON-encoded string or plain text.
	var summary string
	if err := json.Unmarshal(body, &summary); err == nil {
		return summary, nil
	}
	return strings.TrimSpace(string(body)), nil
}

// doJSON performs a request with an optional JSON body and decodes the
// JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid server response: %w", err)
	}
	return nil
}

// checkStatus maps non-2xx responses to errors.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// The session transport has already torn the session down.
		return session.ErrSessionExpired
	case http.StatusNotFound:
		return ErrNotFound
	}
	return fmt.Errorf("server error: %s", resp.Status)
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return errors.New("request timed out")
	}
	return err
}

// sameDay reports whether two timestamps fall on the same calendar day
// in a's location.
func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
