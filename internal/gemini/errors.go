package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers failures to reach the API: request construction,
	// connection errors, unreadable bodies and non-2xx statuses.
	ErrTransport = errors.New("transport error")

	// ErrFormat covers responses that are not JSON or lack
	// candidates[0].content.parts[0].text.
	ErrFormat = errors.New("format error")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed (HTTP %d)", e.StatusCode)
}

// Unwrap classifies a status error as a transport error.
func (e *StatusError) Unwrap() error {
	return ErrTransport
}
