package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidConfig is returned by NewClient for an unusable configuration
	ErrInvalidConfig = errors.New("invalid backend configuration")

	// ErrNotFound is returned when the backend answers 404
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned when the backend rejects the forwarded token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRequest is returned when the backend rejects the payload
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConflict is returned when the backend reports a uniqueness or state conflict
	ErrConflict = errors.New("conflict")

	// ErrNetwork is returned when the backend could not be reached
	ErrNetwork = errors.New("network error")

	// ErrUnexpected covers every other non-2xx answer and undecodable bodies
	ErrUnexpected = errors.New("unexpected backend response")
)

// APIError is a non-2xx answer from the backend. Message is the backend's own
// message when it sent one.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// sentinelFor maps an HTTP status onto one of the package errors
func sentinelFor(status int) error {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrInvalidRequest
	default:
		return ErrUnexpected
	}
}

// MessageOf returns the backend's message carried by err, or fallback
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
