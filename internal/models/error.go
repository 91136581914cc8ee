package models

import (
	"strings"
	"time"
)

// Domain error taxonomy. Services return these; the controller layer maps
// them onto HTTP status codes (Validation→400, NotFound→404, Unauthorized→401,
// Forbidden→403, everything else→500).

// ValidationError signals malformed input or a business-rule violation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewAggregateValidationError joins every rule violation into one error so
// callers see all problems at once
func NewAggregateValidationError(violations []string) *ValidationError {
	return &ValidationError{Message: strings.Join(violations, ", ")}
}

// NotFoundError signals a missing entity
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFoundError creates a NotFoundError with the given message
func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// UnauthorizedError signals an unauthenticated caller or a caller acting on
// a resource they do not own
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// NewUnauthorizedError creates an UnauthorizedError with the given message
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// ForbiddenError signals a caller lacking the role a resource requires
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// NewForbiddenError creates a ForbiddenError with the given message
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// APIError is the standardized JSON error body returned by every endpoint
type APIError struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewAPIError creates an API error body with the current timestamp
func NewAPIError(statusCode int, message string) APIError {
	return APIError{
		StatusCode: statusCode,
		Message:    message,
		Timestamp:  time.Now().UTC(),
	}
}
