package playground

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota

	// Gateway errors (request/response calls)
	ErrorGateway

	// Channel errors
	ErrorConnection
	ErrorDisconnected
	ErrorTimeout
	ErrorNotConnected

	// Local guards
	ErrorGameOver
	ErrorInvalidConfig
	ErrorSerialization
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorGateway:
		return "gateway_error"
	case ErrorConnection:
		return "connection_error"
	case ErrorDisconnected:
		return "disconnected"
	case ErrorTimeout:
		return "timeout"
	case ErrorNotConnected:
		return "not_connected"
	case ErrorGameOver:
		return "game_over"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorSerialization:
		return "serialization_error"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// PlaygroundError is a structured error with code and context.
type PlaygroundError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *PlaygroundError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *PlaygroundError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface for error comparison.
func (e *PlaygroundError) Is(target error) bool {
	t, ok := target.(*PlaygroundError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new PlaygroundError with the given code and message.
func NewError(code ErrorCode, message string) *PlaygroundError {
	return &PlaygroundError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a PlaygroundError.
func WrapError(code ErrorCode, message string, err error) *PlaygroundError {
	return &PlaygroundError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// CodeOf extracts the ErrorCode from an error chain, or ErrorUnknown.
func CodeOf(err error) ErrorCode {
	var pe *PlaygroundError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrorUnknown
}

// IsGatewayError reports whether an error came from a gateway call.
func IsGatewayError(err error) bool {
	return CodeOf(err) == ErrorGateway
}

// IsConnectionError reports whether an error is connection-related.
func IsConnectionError(err error) bool {
	switch CodeOf(err) {
	case ErrorConnection, ErrorDisconnected, ErrorTimeout, ErrorNotConnected:
		return true
	default:
		return false
	}
}
