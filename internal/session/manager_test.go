package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyNavigator records requested routes.
type spyNavigator struct {
	routes []string
}

func (s *spyNavigator) Navigate(route string) {
	s.routes = append(s.routes, route)
}

func authHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login", "/api/auth/signup":
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			if creds["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"user":  map[string]string{"id": "u1", "email": creds["email"], "name": creds["name"]},
				"token": "tok-123",
			})
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]string{"id": "u1", "email": "alice@example.com"},
			})
		case "/api/auth/logout":
			json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestManager_LoginSuccess(t *testing.T) {
	srv := httptest.NewServer(authHandler(t))
	defer srv.Close()

	store := &MemStore{}
	mgr := NewManager(srv.URL, store, NopNavigator{}, nil)

	user, err := mgr.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "tok-123", store.Token())
	assert.Equal(t, user, mgr.CurrentUser())
}

func TestManager_LoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(authHandler(t))
	defer srv.Close()

	store := &MemStore{}
	mgr := NewManager(srv.URL, store, NopNavigator{}, nil)

	_, err := mgr.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, store.Token(), "failed login must not store a token")
	assert.Nil(t, mgr.CurrentUser())
}

func TestManager_LoginUnreachable(t *testing.T) {
	store := &MemStore{}
	mgr := NewManager("http://127.0.0.1:0", store, NopNavigator{}, nil)

	_, err := mgr.Login(context.Background(), "alice@example.com", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestManager_SignupSuccess(t *testing.T) {
	srv := httptest.NewServer(authHandler(t))
	defer srv.Close()

	store := &MemStore{}
	mgr := NewManager(srv.URL, store, NopNavigator{}, nil)

	user, err := mgr.Signup(context.Background(), "bob@example.com", "secret", "Bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "tok-123", store.Token())
}

func TestManager_LogoutClearsStateAndNavigates(t *testing.T) {
	srv := httptest.NewServer(authHandler(t))
	defer srv.Close()

	store := &MemStore{}
	nav := &spyNavigator{}
	mgr := NewManager(srv.URL, store, nav, nil)

	_, err := mgr.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)

	mgr.Logout(context.Background())

	assert.Empty(t, store.Token())
	assert.Nil(t, mgr.CurrentUser())
	assert.Equal(t, []string{RouteHome, RouteLogin}, nav.routes)
}

func TestManager_LogoutRemoteFailureStillClears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := &MemStore{}
	require.NoError(t, store.Save("tok-123"))
	nav := &spyNavigator{}
	mgr := NewManager(srv.URL, store, nav, nil)

	mgr.Logout(context.Background())

	assert.Empty(t, store.Token())
	assert.Equal(t, []string{RouteLogin}, nav.routes)
}

func TestManager_ValidateSuccess(t *testing.T) {
	srv := httptest.NewServer(authHandler(t))
	defer srv.Close()

	store := &MemStore{}
	require.NoError(t, store.Save("tok-123"))
	mgr := NewManager(srv.URL, store, NopNavigator{}, nil)

	user := mgr.Validate(context.Background())
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "tok-123", store.Token(), "valid token must be kept")
}

func TestManager_ValidateRejectedClearsToken(t *testing.T) {
	srv := httptest.NewServer(authHandler(t))
	defer srv.Close()

	store := &MemStore{}
	require.NoError(t, store.Save("stale"))
	mgr := NewManager(srv.URL, store, NopNavigator{}, nil)

	user := mgr.Validate(context.Background())
	assert.Nil(t, user)
	assert.Empty(t, store.Token(), "rejected token must be cleared")
}

func TestManager_ValidateNoToken(t *testing.T) {
	mgr := NewManager("http://127.0.0.1:0", &MemStore{}, NopNavigator{}, nil)
	assert.Nil(t, mgr.Validate(context.Background()))
}

func TestManager_ValidateUnreachableClearsToken(t *testing.T) {
	store := &MemStore{}
	require.NoError(t, store.Save("tok-123"))
	mgr := NewManager("http://127.0.0.1:0", store, NopNavigator{}, nil)

	user := mgr.Validate(context.Background())
	assert.Nil(t, user)
	assert.Empty(t, store.Token())
}

func TestManagerClient_AttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	store := &MemStore{}
	require.NoError(t, store.Save("tok-123"))
	mgr := NewManager("http://unused", store, NopNavigator{}, nil)

	resp, err := mgr.Client().Get(srv.URL + "/tasks")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestManagerClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	mgr := NewManager("http://unused", &MemStore{}, NopNavigator{}, nil)

	resp, err := mgr.Client().Get(srv.URL + "/tasks")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestManagerClient_UnauthorizedEndsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &MemStore{}
	require.NoError(t, store.Save("tok-123"))
	nav := &spyNavigator{}
	mgr := NewManager("http://unused", store, nav, nil)

	resp, err := mgr.Client().Get(srv.URL + "/tasks")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, store.Token(), "401 must clear the stored token")
	assert.Nil(t, mgr.CurrentUser())
	assert.Equal(t, []string{RouteLogin}, nav.routes)
}
