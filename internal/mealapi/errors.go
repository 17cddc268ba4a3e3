package mealapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBackendUnavailable is returned without contacting the backend while the
// circuit breaker is open.
var ErrBackendUnavailable = errors.New("meal backend unavailable")

// APIError describes a response with status >= 400.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// NotFound reports whether the backend answered 404.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// Temporary reports whether a retry could succeed.
func (e *APIError) Temporary() bool { return e.StatusCode >= 500 }

// IsNotFound reports whether err carries a 404 APIError.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
