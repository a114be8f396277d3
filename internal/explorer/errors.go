package explorer

import (
	"errors"
	"fmt"
	"strings"
)

// Explorer errors.
var (
	// ErrUnrecognizedHash means the explorer has never seen the hash.
	// For an address this is an empty history, not a failure.
	ErrUnrecognizedHash = errors.New("unrecognized hash")
	// ErrExplorerUnavailable is returned once every attempt has failed
	// with a retryable error. It wraps the last such error.
	ErrExplorerUnavailable = errors.New("explorer unavailable")
	// ErrSubmissionRejected is returned when the transaction pool refuses
	// a submitted transaction.
	ErrSubmissionRejected = errors.New("transaction rejected")
)

// APIError is an HTTP error response from an explorer.
type APIError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Message)
}

// Retryable reports whether another explorer may answer differently.
func (e *APIError) Retryable() bool {
	return e.Status == 0 || e.Status >= 500
}

// IsUnrecognizedHash reports whether an explorer error message says the
// hash is unknown.
func IsUnrecognizedHash(message string) bool {
	return strings.Contains(message, "unrecognized hash")
}

// transportError is a failure to get any response: connection errors and
// per-attempt timeouts.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func retryable(err error) bool {
	if errors.Is(err, ErrUnrecognizedHash) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	var te *transportError
	return errors.As(err, &te)
}
