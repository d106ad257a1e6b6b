package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "99")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 99" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: 99")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "99" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewIOError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIOError("export", "/root/tasks.json", cause)

	if err.Type != ErrorTypeIO {
		t.Errorf("NewIOError type = %v, want %v", err.Type, ErrorTypeIO)
	}
	if err.Message != "export failed for /root/tasks.json" {
		t.Errorf("NewIOError message = %v", err.Message)
	}
	if err.Code != "IO_ERROR" {
		t.Errorf("NewIOError code = %v, want %v", err.Code, "IO_ERROR")
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewIOError should unwrap to its cause")
	}
	path, ok := err.GetContext("path")
	if !ok || path != "/root/tasks.json" {
		t.Errorf("NewIOError should set path context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewDatabaseError("save snapshot", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: save snapshot" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewInterruptedError(t *testing.T) {
	err := NewInterruptedError("process tasks", context.Canceled)

	if err.Type != ErrorTypeInterrupted {
		t.Errorf("NewInterruptedError type = %v, want %v", err.Type, ErrorTypeInterrupted)
	}
	if err.Code != "INTERRUPTED" {
		t.Errorf("NewInterruptedError code = %v, want %v", err.Code, "INTERRUPTED")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("NewInterruptedError should unwrap to context.Canceled")
	}
}

func TestAsAppError(t *testing.T) {
	appError := NewNotFoundError("task", "1")
	wrapped := fmt.Errorf("complete: %w", appError)

	result, ok := AsAppError(wrapped)
	if !ok || result != appError {
		t.Errorf("AsAppError should find the wrapped AppError")
	}

	result, ok = AsAppError(errors.New("regular error"))
	if ok || result != nil {
		t.Errorf("AsAppError should return nil, false for regular error")
	}

	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError should return true for a wrapped AppError")
	}
}

func TestIsInterrupted(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"interrupted app error", NewInterruptedError("demo", nil), true},
		{"bare context cancellation", context.Canceled, true},
		{"wrapped context cancellation", fmt.Errorf("run: %w", context.Canceled), true},
		{"io error", NewIOError("export", "x", nil), false},
		{"regular error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInterrupted(tt.err); got != tt.expected {
				t.Errorf("IsInterrupted() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("log.level must be one of debug info warn error", nil),
			expected: "log.level must be one of debug info warn error",
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("task", "7"),
			expected: "task not found: 7",
		},
		{
			name:     "IO error shows cause",
			err:      NewIOError("export", "x.json", errors.New("no such file or directory")),
			expected: "no such file or directory",
		},
		{
			name:     "Database error",
			err:      NewDatabaseError("query", errors.New("locked")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Interrupted error",
			err:      NewInterruptedError("demo", nil),
			expected: "The operation was interrupted.",
		},
		{
			name:     "Unexpected error",
			err:      NewUnexpectedError("panic: nil map", nil),
			expected: "An unexpected error occurred: panic: nil map",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewIOError("export", "x", nil)) != "IO_ERROR" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("bad", nil), false},
		{"Not found error", NewNotFoundError("task", "1"), false},
		{"Interrupted error", NewInterruptedError("demo", nil), false},
		{"IO error", NewIOError("export", "x", nil), true},
		{"Database error", NewDatabaseError("query", nil), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ShouldLogError(tt.err); result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
