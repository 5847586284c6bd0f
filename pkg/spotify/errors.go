package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError represents a non-success response from the Spotify Web API.
//
// The APIError type preserves the HTTP status and the raw response body
// for the caller. It implements error, and provides additional methods
// for retry logic.
type APIError struct {
	Status  int    // HTTP status code
	Message string // Error message from Spotify, if the body carried one
	Body    []byte // Raw response body
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("spotify: API error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("spotify: API error %d", e.Status)
}

// Is checks if the target error is a Spotify API error with the same status.
//
// This allows errors.Is() to work with *APIError types, including the
// ErrNotFound sentinel.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Temporary returns true if the error is temporary and the request
// may succeed if retried.
//
// Server errors (5xx) and 429 responses are considered temporary.
// Network errors and timeouts should also be considered temporary
// but are not represented by this type.
func (e *APIError) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// AuthError represents a credential or token failure: a refresh exchange
// that was rejected, an unreachable accounts endpoint, or a request that
// still returned 401 after the single refresh-and-retry.
type AuthError struct {
	Message string // Human-readable cause
	Err     error  // Underlying error, if any
}

// Error returns the error message.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("spotify: auth: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("spotify: auth: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// RateLimitError is returned when the API kept responding 429 beyond the
// retry budget, or when its Retry-After hint exceeded the configured
// ceiling.
type RateLimitError struct {
	RetryAfter time.Duration // Server-provided wait hint
}

// Error returns the error message.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("spotify: rate limited, retry after %s", e.RetryAfter)
}

// Temporary reports that the condition may clear; rate limits always do.
func (e *RateLimitError) Temporary() bool {
	return true
}

// Predefined errors for common cases.
var (
	// ErrNoToken is returned when a request needs an access token but none
	// is stored and no credentials exist to mint one.
	ErrNoToken = errors.New("spotify: no access token and no credentials to obtain one")

	// ErrNotFound matches any *APIError with status 404 via errors.Is.
	ErrNotFound = &APIError{Status: http.StatusNotFound}
)

// errorEnvelope is the JSON error shape Spotify wraps failures in.
type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// newAPIError builds an *APIError from a response body, pulling the
// message out of the {"error": {...}} envelope when present.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Body: body}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		e.Message = env.Error.Message
	}
	return e
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited reports whether err is a terminal rate-limit failure.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
