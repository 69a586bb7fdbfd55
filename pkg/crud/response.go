package crud

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a response that is valid JSON but does not
// honor the {success, data, message} envelope contract. Callers surface a
// generic format error instead of crashing on the unexpected shape.
var ErrMalformedResponse = errors.New("invalid data format")

// ErrNotFound marks a well-formed success response that carried no data
// where exactly one record was expected.
var ErrNotFound = errors.New("not found")

// ListResponse is the envelope for list operations.
type ListResponse[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// GetResponse is the envelope for single-record reads.
type GetResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// MutateResponse is the envelope for create, update and restore operations.
type MutateResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// DeleteResponse is the envelope for soft-delete operations; it carries no
// data.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// APIError is a failure reported by the backend through the envelope.
type APIError struct {
	Status  int // HTTP status, 0 when the failure came in a 2xx envelope
	Message string
}

func (e *APIError) Error() string { return e.Message }

// envelopeError converts an unsuccessful envelope into an error. A failure
// without a human-readable message violates the contract and maps to
// ErrMalformedResponse.
func envelopeError(success bool, message string) error {
	if success {
		return nil
	}
	if message == "" {
		return fmt.Errorf("%w: failure response without message", ErrMalformedResponse)
	}
	return &APIError{Message: message}
}
