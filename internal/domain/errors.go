package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrServerOffline indicates TMDB is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrAuthFailed indicates the access token was rejected
	ErrAuthFailed = errors.New("access token is invalid")

	// ErrMalformedResponse indicates a response body that could not be decoded
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotConfigured indicates no access token has been set
	ErrNotConfigured = errors.New("access token is not configured")
)

// StatusError is returned for non-2xx responses without a dedicated sentinel
type StatusError struct {
	StatusCode int
	Message    string // status_message from the body, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}
