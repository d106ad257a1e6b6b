package cli

import (
	"fmt"
	"io"
	"log/slog"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

// ErrorHandler turns command errors into user notices and exit codes
type ErrorHandler struct {
	out    io.Writer
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(out io.Writer, logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ErrorHandler{out: out, logger: logger}
}

// Handle reports err and returns the exit code for it.
// An interruption is a graceful exit; every other error is a failure.
func (eh *ErrorHandler) Handle(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.IsInterrupted(err) {
		eh.logger.Debug("interrupted", "error", err)
		fmt.Fprintln(eh.out, "\n👋 Goodbye!")
		return ExitOK
	}

	if errors.ShouldLogError(err) {
		eh.logger.Error("command failed", "error", err, "code", eh.GetErrorCode(err))
	}
	fmt.Fprintf(eh.out, "❌ Error: %s\n", eh.Message(err))
	return ExitFailure
}

// Message returns the user-facing text for err
func (eh *ErrorHandler) Message(err error) string {
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
