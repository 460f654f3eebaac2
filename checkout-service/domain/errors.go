package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies checkout failures by how the caller may recover
type ErrorKind string

const (
	// ErrorKindValidation is a local input problem, handled before any remote call
	ErrorKindValidation ErrorKind = "validation_error"
	// ErrorKindNetwork is transient, the same request is safe to retry
	ErrorKindNetwork ErrorKind = "network_error"
	// ErrorKindInvalidRequest was rejected by the processor, different input is required
	ErrorKindInvalidRequest ErrorKind = "invalid_request_error"
	// ErrorKindAuth is a credential misconfiguration, fatal for the session
	ErrorKindAuth ErrorKind = "auth_error"
	// ErrorKindTokenization is a processor card rejection with a user-facing reason
	ErrorKindTokenization ErrorKind = "tokenization_error"
)

// Error is a classified checkout failure
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether the session may return to collecting after this failure.
// Only credential misconfiguration is fatal; everything else is recoverable with
// corrected input or a plain retry.
func (e *Error) Retryable() bool {
	return e.Kind != ErrorKindAuth
}

// NewValidationError creates a local validation failure
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, Message: message}
}

// NewNetworkError creates a transient transport failure
func NewNetworkError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindNetwork, Message: message, cause: cause}
}

// NewInvalidRequestError creates a non-retryable processor rejection
func NewInvalidRequestError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindInvalidRequest, Message: message, cause: cause}
}

// NewAuthError creates a fatal credential failure
func NewAuthError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindAuth, Message: message, cause: cause}
}

// NewTokenizationError creates a processor card rejection
func NewTokenizationError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindTokenization, Message: message, cause: cause}
}

// AsError extracts a classified checkout error from an error chain
func AsError(err error) (*Error, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}

// Classify wraps an arbitrary error as a classified checkout error. Errors that
// already carry a kind pass through; anything else is treated as transient.
func Classify(err error) *Error {
	if cerr, ok := AsError(err); ok {
		return cerr
	}
	return NewNetworkError("unexpected processor failure", err)
}

// Session lifecycle sentinels. These signal discards and no-ops to the
// orchestration layer, not failures to surface to the user.
var (
	ErrSessionDisposed     = errors.New("checkout session is disposed")
	ErrSessionNotFound     = errors.New("checkout session not found")
	ErrSubmitInFlight      = errors.New("a tokenization request is already in flight")
	ErrSessionTerminal     = errors.New("checkout session already reached a terminal state")
	ErrStaleAttempt        = errors.New("result belongs to a superseded tokenization attempt")
	ErrSessionConflict     = errors.New("checkout session was modified concurrently")
	ErrConfirmationPending = errors.New("intent confirmation outcome pending")
)
