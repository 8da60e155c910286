package researchmap

import (
	"errors"
	"fmt"
)

// Common errors returned by the researchmap client.
var (
	// ErrNotFound indicates the author id is unknown to researchmap.
	ErrNotFound = errors.New("not found in researchmap")

	// ErrRateLimited indicates the API answered 429.
	ErrRateLimited = errors.New("researchmap rate limit exceeded")

	// ErrNetworkError indicates a transport failure.
	ErrNetworkError = errors.New("network error communicating with researchmap")

	// ErrInvalidResponse indicates a body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from researchmap")
)

// APIError represents a non-success HTTP status from researchmap.
type APIError struct {
	StatusCode int
	AuthorID   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("researchmap API error (status %d, author %s)", e.StatusCode, e.AuthorID)
}

// Unwrap maps well-known statuses onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 404:
		return ErrNotFound
	case 429:
		return ErrRateLimited
	}
	return nil
}

// IsNotFound returns true if the error indicates the author was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
