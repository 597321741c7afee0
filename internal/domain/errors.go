package domain

import "fmt"

// FieldError describes a single invalid or missing field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed or incomplete input with field-level detail
type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with optional field details
func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// NotFoundError reports a missing resource
type NotFoundError struct {
	Resource string `json:"resource"`
	ID       string `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidStateError reports a transition that is illegal from the current status
type InvalidStateError struct {
	Current   string `json:"current"`
	Attempted string `json:"attempted"`
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a report in status %s", e.Attempted, e.Current)
}

// NewInvalidStateError creates an invalid-state error
func NewInvalidStateError(current, attempted string) *InvalidStateError {
	return &InvalidStateError{Current: current, Attempted: attempted}
}

// AuthorizationError reports a forbidden action, such as self-approval or
// a field edit requiring an elevated role
type AuthorizationError struct {
	Message string `json:"message"`
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NewAuthorizationError creates an authorization error
func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// ConflictError reports a duplicate or otherwise conflicting resource.
// ExistingID references the resource already holding the contested slot.
type ConflictError struct {
	Message    string `json:"message"`
	ExistingID string `json:"existing_id,omitempty"`
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a conflict error referencing an existing resource
func NewConflictError(message, existingID string) *ConflictError {
	return &ConflictError{Message: message, ExistingID: existingID}
}

// UpstreamError reports a gateway or provider failure
type UpstreamError struct {
	Provider   string `json:"provider"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Provider, e.StatusCode, e.Message)
}

// NewUpstreamError creates an upstream error
func NewUpstreamError(provider string, statusCode int, message string) *UpstreamError {
	return &UpstreamError{Provider: provider, StatusCode: statusCode, Message: message}
}
