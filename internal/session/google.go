package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"taskai/internal/service"
)

const (
	// Callback timeout for the browser round trip.
	googleCallbackTimeout = 5 * time.Minute

	// Code exchange timeout.
	googleExchangeTimeout = 30 * time.Second

	// Starting port for the local callback server.
	googleStartPort = 8085

	// Max port attempts.
	googleMaxPortAttempts = 5
)

// GoogleLogin runs the third-party identity flow. The browser is sent
// to the auth service's Google authorize endpoint; the service handles
// the Google round trip and redirects back to a local callback with an
// authorization code, which is exchanged for a session token at the
// service's token endpoint.
//
// The URL to open is printed to out. On success the token is persisted
// and the signed-in user is returned.
func (m *Manager) GoogleLogin(ctx context.Context, out io.Writer) (*service.User, error) {
	port, listener, err := findAvailablePort()
	if err != nil {
		return nil, fmt.Errorf("could not bind to local port for login callback: %w", err)
	}
	defer listener.Close()

	conf := &oauth2.Config{
		ClientID:    "taskai-cli",
		RedirectURL: fmt.Sprintf("http://localhost:%d/callback", port),
		Endpoint: oauth2.Endpoint{
			AuthURL:  m.authURL + "/api/auth/google",
			TokenURL: m.authURL + "/api/auth/google/token",
		},
	}

	verifier := oauth2.GenerateVerifier()
	authURL := conf.AuthCodeURL("state", oauth2.S256ChallengeOption(verifier))

	fmt.Fprintln(out, "Open this URL in your browser:")
	fmt.Fprintln(out, authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			errCh <- errors.New("no code in callback")
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var code string
	select {
	case code = <-codeCh:
		// Got code
	case err := <-errCh:
		return nil, err
	case <-time.After(googleCallbackTimeout):
		return nil, errors.New("login callback timed out")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	exchangeCtx, cancelExchange := context.WithTimeout(ctx, googleExchangeTimeout)
	defer cancelExchange()
	exchangeCtx = context.WithValue(exchangeCtx, oauth2.HTTPClient, m.base)

	token, err := conf.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := m.store.Save(token.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	if u := m.Validate(ctx); u != nil {
		return u, nil
	}
	return nil, errors.New("login succeeded but session validation failed")
}

// findAvailablePort tries ports starting at googleStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < googleMaxPortAttempts; i++ {
		port := googleStartPort + i
		addr := fmt.Sprintf("localhost:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, errors.New("no available port found")
}
