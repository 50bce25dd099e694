package session

import "errors"

// ErrInvalidCredentials is returned when the auth service rejects a
// login or signup attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSessionExpired is returned when an authenticated call comes back
// with 401. The session has already been torn down by the time a caller
// sees this.
var ErrSessionExpired = errors.New("session expired (run: taskai login)")
