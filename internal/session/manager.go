// Package session owns the authentication token lifecycle: it stores
// the bearer token in durable storage, attaches it to outbound calls,
// and reacts to authorization failures by clearing session state and
// redirecting to the login route.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"taskai/internal/service"
)

// Manager drives the session state machine:
//
//	ANONYMOUS -> (login/signup success) -> AUTHENTICATED
//	AUTHENTICATED -> (logout | 401 | failed startup validation) -> ANONYMOUS
//
// There are no intermediate states; callers never observe a partially
// authenticated session.
type Manager struct {
	authURL string
	store   TokenStore
	nav     Navigator
	base    *http.Client
	httpc   *http.Client
	log     *slog.Logger
	user    *service.User
}

// authEnvelope is the auth service's login/signup response body.
type authEnvelope struct {
	User  service.User `json:"user"`
	Token string       `json:"token"`
}

// NewManager creates a session manager for the given auth service base
// URL. Dependencies are injected; pass a NopNavigator and nil logger
// when those facilities are not needed.
func NewManager(authURL string, store TokenStore, nav Navigator, logger *slog.Logger) *Manager {
	return NewManagerWithClient(authURL, store, nav, logger, &http.Client{})
}

// NewManagerWithClient creates a session manager using the given base
// HTTP client for all transport (useful for tests).
func NewManagerWithClient(authURL string, store TokenStore, nav Navigator, logger *slog.Logger, base *http.Client) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		authURL: authURL,
		store:   store,
		nav:     nav,
		base:    base,
		log:     logger,
	}
	m.httpc = &http.Client{
		Transport: &Transport{
			Base:           base.Transport,
			Store:          store,
			OnUnauthorized: m.expire,
		},
		Timeout: base.Timeout,
	}
	return m
}

// Client returns an HTTP client whose transport attaches the stored
// bearer token to every request and tears the session down on 401.
// All authenticated calls to the persistence and AI services must go
// through this client.
func (m *Manager) Client() *http.Client {
	return m.httpc
}

// CurrentUser returns the in-memory user, or nil when anonymous.
func (m *Manager) CurrentUser() *service.User {
	return m.user
}

// Login authenticates with email and password. On success the returned
// token is persisted and the user is set; on failure stored state is
// left untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*service.User, error) {
	return m.authenticate(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Signup registers a new account. Same contract as Login.
func (m *Manager) Signup(ctx context.Context, email, password, name string) (*service.User, error) {
	return m.authenticate(ctx, "/api/auth/signup", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
}

func (m *Manager) authenticate(ctx context.Context, path string, creds map[string]string) (*service.User, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.authURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		m.log.Debug("authentication rejected", "path", path, "status", resp.StatusCode)
		return nil, ErrInvalidCredentials
	}

	var env authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid auth response: %w", err)
	}
	if env.Token == "" {
		return nil, fmt.Errorf("auth response missing token")
	}

	if err := m.store.Save(env.Token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	m.user = &env.User
	m.nav.Navigate(RouteHome)
	return m.user, nil
}

// Logout makes a best-effort call to the remote logout endpoint, then
// unconditionally clears the stored token and in-memory user and
// navigates to the login route. Remote failure never blocks the local
// cleanup.
func (m *Manager) Logout(ctx context.Context) {
	if tok := m.store.Token(); tok != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.authURL+"/api/auth/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+tok)
			resp, err := m.base.Do(req)
			if err != nil {
				m.log.Warn("logout request failed", "error", err)
			} else {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}
	}
	m.reset()
}

// Validate checks a stored token against the who-am-I endpoint. Run
// once at process start. On success the in-memory user is set; on any
// failure the stored token is cleared and nil is returned. Never
// returns an error.
func (m *Manager) Validate(ctx context.Context) *service.User {
	tok := m.store.Token()
	if tok == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.authURL+"/api/auth/me", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := m.base.Do(req)
	if err != nil {
		m.log.Warn("session validation failed", "error", err)
		m.clearToken()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.log.Debug("stored session rejected", "status", resp.StatusCode)
		m.clearToken()
		return nil
	}

	var env struct {
		User service.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		m.log.Warn("invalid who-am-I response", "error", err)
		m.clearToken()
		return nil
	}

	m.user = &env.User
	return m.user
}

// expire handles a 401 observed by the transport: local teardown only,
// no remote logout call for a token the server already rejected.
func (m *Manager) expire() {
	m.log.Debug("received 401, ending session")
	m.reset()
}

// reset clears all session state and navigates to the login route.
func (m *Manager) reset() {
	m.clearToken()
	m.user = nil
	m.nav.Navigate(RouteLogin)
}

func (m *Manager) clearToken() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn("failed to clear stored token", "error", err)
	}
}
