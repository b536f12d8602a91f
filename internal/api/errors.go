package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a backend failure carrying the HTTP status and the backend's
// error message. The registration workflow classifies on both.
type Error struct {
	Status    int
	Message   string
	RequestID string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// StatusOf extracts the HTTP status from an error, or 0 when the error is
// not a backend response (transport failure, cancelled context).
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf extracts the backend message from an error, or "".
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsConflict reports whether the error is a 409 response.
func IsConflict(err error) bool {
	return StatusOf(err) == http.StatusConflict
}
