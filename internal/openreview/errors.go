package openreview

import (
	"errors"
	"fmt"
)

// Common errors returned by the OpenReview client.
var (
	// ErrNotFound indicates the venue or note was not found.
	ErrNotFound = errors.New("not found on OpenReview")

	// ErrAuthError indicates missing or rejected credentials.
	ErrAuthError = errors.New("OpenReview authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("OpenReview rate limit exceeded")

	// ErrNetworkError indicates a connectivity problem.
	ErrNetworkError = errors.New("network error communicating with OpenReview")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from OpenReview")

	// ErrNoPDF indicates a submission without a PDF attachment.
	ErrNoPDF = errors.New("submission has no PDF attachment")
)

// APIError represents an error response from the OpenReview API.
type APIError struct {
	StatusCode int
	Message    string
	NoteID     string // for context in note-related errors
}

func (e *APIError) Error() string {
	if e.NoteID != "" {
		return fmt.Sprintf("OpenReview API error (status %d): %s (note: %s)", e.StatusCode, e.Message, e.NoteID)
	}
	return fmt.Sprintf("OpenReview API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsAuthError reports whether err indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}
