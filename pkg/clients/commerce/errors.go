package commerce

import (
	"errors"
	"fmt"
	"strings"
)

var ErrResourceNotSupported = errors.New("resource type not supported")

// Error represents an error response returned by the platform
type Error struct {
	StatusCode int
	Message    string
	Body       string
	RequestID  string
}

func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("commerce API error %d: %s (request id %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("commerce API error %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps a failure to reach the platform. Requests are never retried.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedKind classifies why a response body could not be decoded
type MalformedKind string

const (
	MalformedDepth            MalformedKind = "depth"
	MalformedSyntax           MalformedKind = "syntax"
	MalformedControlCharacter MalformedKind = "control-character"
)

// MalformedResponseError is returned together with a non-nil Response whose
// Data is nil, so StatusCode and RawBody can still be inspected.
type MalformedResponseError struct {
	Kind       MalformedKind
	StatusCode int
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ValidationError describes one invalid or missing request field
type ValidationError struct {
	Field       string `json:"field"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// ValidationErrors collects every problem found before a request is built
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fieldErr := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Description))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the error recorded for field, if any
func (e ValidationErrors) Field(field string) (ValidationError, bool) {
	for _, fieldErr := range e {
		if fieldErr.Field == field {
			return fieldErr, true
		}
	}
	return ValidationError{}, false
}
