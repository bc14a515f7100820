package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error represents an error response from the Spotify Web API.
//
// The Error type carries the HTTP status and the message Spotify returned.
// It implements error and supports errors.Is matching by status.
type Error struct {
	Status  int    // HTTP status code
	Message string // Error message from Spotify
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("spotify: API error %d: %s", e.Status, e.Message)
}

// Is checks if the target error is a Spotify API error with the same status.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Unauthorized reports whether the error is an authorization failure (401).
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Predefined errors for common cases.
var (
	// ErrMissingCredentials is returned when an operation requires Spotify
	// application credentials but client ID or secret is not configured.
	ErrMissingCredentials = errors.New("spotify: client ID and client secret are required")

	// ErrAuthenticationFailed is returned when the token endpoint is
	// unreachable, rejects the request, or returns an unparseable body.
	// The underlying transport detail is deliberately not exposed.
	ErrAuthenticationFailed = errors.New("spotify: authentication failed")
)

// apiErrorBody is the JSON error envelope the Web API returns.
type apiErrorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// parseAPIError builds an *Error from a non-2xx response body.
//
// Spotify wraps errors as {"error": {"status": ..., "message": ...}}, but a
// proxy or gateway may return something else entirely, so the body is
// best-effort and the HTTP status is authoritative.
func parseAPIError(statusCode int, body []byte) *Error {
	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &Error{Status: statusCode, Message: envelope.Error.Message}
	}
	return &Error{Status: statusCode, Message: http.StatusText(statusCode)}
}
