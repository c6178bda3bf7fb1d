package apperror

import (
	"fmt"
	"net/http"
)

// Error represents an application error with HTTP status and error code
type Error struct {
	HTTPStatus int
	Code       string
	Message    string
	Internal   error
	Details    map[string]any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the internal error
func (e *Error) Unwrap() error {
	return e.Internal
}

// Body returns the wire representation of the error, always wrapped
// as {"error": {"code", "message", "details"?}}.
func (e *Error) Body() map[string]any {
	errBody := map[string]any{
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		errBody["details"] = e.Details
	}
	return map[string]any{
		"error": errBody,
	}
}

// WithInternal returns a copy of the error with an internal error attached
func (e *Error) WithInternal(err error) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    e.Message,
		Internal:   err,
		Details:    e.Details,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    message,
		Internal:   e.Internal,
		Details:    e.Details,
	}
}

// WithDetails returns a copy of the error with details attached
func (e *Error) WithDetails(details map[string]any) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    e.Message,
		Internal:   e.Internal,
		Details:    details,
	}
}

// New creates a new application error
func New(status int, code, message string) *Error {
	return &Error{
		HTTPStatus: status,
		Code:       code,
		Message:    message,
	}
}

// Common error definitions
var (
	// Authentication errors
	ErrMissingAPIKey = New(http.StatusForbidden, "MISSING_API_KEY", "API key is required")
	ErrInvalidAPIKey = New(http.StatusForbidden, "INVALID_API_KEY", "Invalid API key provided")

	// Policy errors
	ErrWriteForbidden = New(http.StatusForbidden, "WRITE_OPERATION_FORBIDDEN", "Write operations are not allowed. This API is read-only.")

	// Availability errors
	ErrNeo4jUnavailable = New(http.StatusServiceUnavailable, "NEO4J_UNAVAILABLE", "Neo4j database is not available")

	// Query errors
	ErrQueryTimeout = New(http.StatusGatewayTimeout, "QUERY_TIMEOUT", "Query execution exceeded timeout limit")
	ErrQuerySyntax  = New(http.StatusBadRequest, "QUERY_SYNTAX_ERROR", "Invalid Cypher query syntax")

	// Resource errors
	ErrNodeNotFound = New(http.StatusNotFound, "NODE_NOT_FOUND", "Node not found")

	// Validation errors
	ErrBadRequest = New(http.StatusBadRequest, "bad_request", "Invalid request")

	// Server errors
	ErrInternal = New(http.StatusInternalServerError, "internal_error", "An internal error occurred")
)

// NewBadRequest creates a bad request error with a custom message
func NewBadRequest(message string) *Error {
	return ErrBadRequest.WithMessage(message)
}

// NewInternal creates an internal error with a message and optional wrapped error
func NewInternal(message string, err error) *Error {
	return &Error{
		HTTPStatus: http.StatusInternalServerError,
		Code:       "internal_error",
		Message:    message,
		Internal:   err,
	}
}
