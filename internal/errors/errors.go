package errors

import (
	"context"
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewIOError creates an error for a failed file operation on path
func NewIOError(operation string, path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeIO,
		Message: fmt.Sprintf("%s failed for %s", operation, path),
		Code:    "IO_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
			"path":      path,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInterruptedError creates an error for an operation stopped by cancellation
func NewInterruptedError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInterrupted,
		Message: fmt.Sprintf("operation interrupted: %s", operation),
		Code:    "INTERRUPTED",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewUnexpectedError creates an error for failures outside the known taxonomy,
// including recovered panics
func NewUnexpectedError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnexpected,
		Message: message,
		Code:    "UNEXPECTED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsInterrupted reports whether err is an interruption, either an
// Interrupted AppError or a bare context cancellation.
func IsInterrupted(err error) bool {
	if IsErrorType(err, ErrorTypeInterrupted) {
		return true
	}
	return errors.Is(err, context.Canceled)
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeIO:
			if appErr.Cause != nil {
				return appErr.Cause.Error()
			}
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeInterrupted:
			return "The operation was interrupted."
		default:
			return "An unexpected error occurred: " + appErr.Message
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInterrupted:
			return false
		default:
			return true
		}
	}
	return true
}
