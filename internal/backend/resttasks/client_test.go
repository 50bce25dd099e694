package resttasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskai/internal/config"
	"taskai/internal/service"
	"taskai/internal/session"
)

func newClient(srvURL string) *Client {
	cfg := &config.Config{TodoURL: srvURL, AIURL: srvURL}
	return New(cfg, http.DefaultClient)
}

func TestListTasks_FiltersAsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks", r.URL.Path)
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"tasks": []map[string]any{
				{"id": "t1", "title": "Ship release", "status": "TODO", "priority": "HIGH"},
			},
		})
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	tasks, err := c.ListTasks(context.Background(), service.Filters{
		Status:   service.StatusTodo,
		Priority: service.PriorityHigh,
		Search:   "release",
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ship release", tasks[0].Title)
	assert.Contains(t, gotQuery, "status=TODO")
	assert.Contains(t, gotQuery, "priority=HIGH")
	assert.Contains(t, gotQuery, "search=release")
}

func TestListTasks_DueDateFilteredClientSide(t *testing.T) {
	today := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	tomorrow := today.Add(24 * time.Hour)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery, "due-date dimension must not travel on the wire")
		json.NewEncoder(w).Encode(map[string]any{
			"tasks": []map[string]any{
				{"id": "t1", "title": "Today", "dueDate": today.Format(time.RFC3339)},
				{"id": "t2", "title": "Tomorrow", "dueDate": tomorrow.Format(time.RFC3339)},
				{"id": "t3", "title": "No due date"},
			},
		})
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	tasks, err := c.ListTasks(context.Background(), service.Filters{DueDate: &today})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Today", tasks[0].Title)
}

func TestCreateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tasks", r.URL.Path)

		var draft service.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Buy milk", draft.Title)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "t1", "title": draft.Title, "status": "TODO", "priority": "MEDIUM",
		})
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	task, err := c.CreateTask(context.Background(), service.Draft{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "t1", task.ID)
	assert.Equal(t, service.StatusTodo, task.Status)
}

func TestUpdateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/tasks/t1", r.URL.Path)

		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "DONE", patch["status"])

		json.NewEncoder(w).Encode(map[string]any{"id": "t1", "title": "Buy milk", "status": "DONE"})
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	done := service.StatusDone
	task, err := c.UpdateTask(context.Background(), "t1", service.Patch{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, service.StatusDone, task.Status)
}

func TestUpdateTask_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Task not found"})
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	title := "x"
	_, err := c.UpdateTask(context.Background(), "missing", service.Patch{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/tasks/t1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted successfully"})
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	require.NoError(t, c.DeleteTask(context.Background(), "t1"))
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	_, err := c.ListTasks(context.Background(), service.Filters{})
	require.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestServerErrorMapsToMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	_, err := c.ListTasks(context.Background(), service.Filters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}

func TestSuggestTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ai/suggest", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "meet with Ann", body["input"])

		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "s1", "title": "Schedule: meet with Ann", "priority": "MEDIUM"},
		})
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	tasks, err := c.SuggestTasks(context.Background(), "meet with Ann")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Schedule: meet with Ann", tasks[0].Title)
}

func TestSuggestTasks_NoAIService(t *testing.T) {
	c := New(&config.Config{TodoURL: "http://localhost:4000"}, http.DefaultClient)
	_, err := c.SuggestTasks(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no AI service configured")
}

func TestWeeklySummary_JSONString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai/summary", r.URL.Path)
		json.NewEncoder(w).Encode("You completed 3 tasks this week.")
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	summary, err := c.WeeklySummary(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "You completed 3 tasks this week.", summary)
}

func TestWeeklySummary_PlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Busy week!\n"))
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	summary, err := c.WeeklySummary(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Busy week!", summary)
}
