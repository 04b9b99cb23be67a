package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport-level failures: the backend could not
	// be reached or did not answer in time.
	ErrUnavailable = errors.New("server unavailable")

	// ErrAlreadyApplied marks the tolerated redirect-style response: the
	// operation was already performed by an earlier, partially-failed
	// attempt.
	ErrAlreadyApplied = errors.New("already applied")

	// ErrUnauthorized marks a 401 response. The stored token is
	// invalidated when this is returned.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError reports a non-2xx, non-redirect, non-401 response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status: %s", e.Status)
}
