package session

import "net/http"

// Transport is an http.RoundTripper that attaches the stored bearer
// token to every outbound request. There is no per-call opt-out: any
// request sent through a client using this transport is authenticated
// when a token is stored.
//
// A 401 response invokes OnUnauthorized before the response is returned
// to the caller, so the session is already torn down when the caller
// observes the failure.
type Transport struct {
	// Base is the underlying round tripper. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper

	// Store is read on every outbound call.
	Store TokenStore

	// OnUnauthorized is called for every 401 response.
	OnUnauthorized func()
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok := t.Store.Token(); tok != "" {
		// RoundTrippers must not mutate the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.OnUnauthorized != nil {
		t.OnUnauthorized()
	}
	return resp, nil
}
