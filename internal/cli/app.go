package cli

import (
	"context"
	"io"
	"log/slog"

	"task-manager/internal/config"
	"task-manager/internal/logging"
)

// Command is implemented by every handler behind a cobra command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// App carries the dependencies shared by command handlers
type App struct {
	out    io.Writer
	config *config.Config
	logger *slog.Logger
}

// NewApp creates a new CLI application writing notices to out
func NewApp(out io.Writer, cfg *config.Config, logger *slog.Logger) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{out: out, config: cfg, logger: logger}
}

// Main runs the tm command tree with args and returns the process exit code.
// Notices go to stdout and structured logs to stderr.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return NewRootCommand(stdout, stderr).Run(ctx, args)
}
