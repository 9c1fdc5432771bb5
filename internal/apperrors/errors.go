package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNoAccessToken  = errors.New("no access token available")
	ErrNoRefreshToken = errors.New("no refresh token available")
	ErrRefreshFailed  = errors.New("failed to refresh token")

	ErrNotAuthenticated = errors.New("not authenticated")

	ErrTestNotFound = errors.New("test not found")
)

// Non-2xx response from the backend.
// Detail carries the backend provided message if the body had one.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Detail)
}

func NewRequestError(status int, detail string) *RequestError {
	return &RequestError{Status: status, Detail: detail}
}

// StatusOf returns the http status of err if it wraps a RequestError, 0 otherwise
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}
