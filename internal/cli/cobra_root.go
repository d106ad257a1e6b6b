package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	stdout io.Writer
	stderr io.Writer
	config *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(stdout, stderr io.Writer) *RootCommand {
	root := &RootCommand{
		stdout: stdout,
		stderr: stderr,
		logger: logging.Discard(),
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "An in-memory task manager demo",
		Long: `Task Manager (tm) keeps a small list of tasks in memory, marks them
complete, filters them by status and tag, exports them to JSON and walks
them one by one with a pause between each.

EXAMPLES:
  tm                                       # Run the feature demo, then the processing demo
  tm features --export-path out.json       # Feature demo only, exporting to out.json
  tm process --process-delay 1s            # Processing demo with a one second pause
  tm inspect tasks.json                    # Show the tasks stored in an export
  tm --archive features                    # Archive the export as a snapshot
  tm snapshots list                        # List archived snapshots

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

    TM_EXPORT_PATH                         Export file (default: tasks.json)
    TM_PROCESS_DELAY                       Pause between processed tasks (default: 100ms)
    TM_LOG_LEVEL                           debug, info, warn or error (default: warn)
    TM_LOG_FORMAT                          text or json (default: text)
    TM_ARCHIVE_ENABLED                     Archive each export (default: false)
    TM_ARCHIVE_PATH                        Archive database (default: ~/.tm/archive.db)

  Interrupting a running demo with Ctrl+C exits cleanly.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := root.newApp()
			if err := NewFeaturesCommand(app).Execute(cmd.Context(), args); err != nil {
				return err
			}
			return NewProcessCommand(app).Execute(cmd.Context(), args)
		},
	}
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	config.AddFlags(root.cmd.PersistentFlags())
	root.addSubcommands()

	return root
}

// SetArgs sets the arguments the command tree is executed with.
// A nil slice means no arguments rather than os.Args.
func (r *RootCommand) SetArgs(args []string) {
	if args == nil {
		args = []string{}
	}
	r.cmd.SetArgs(args)
}

// ExecuteContext runs the root command with ctx available to every handler
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Run executes the command tree with args and returns the exit code.
// A panic raised by a command is reported like any other unexpected failure.
func (r *RootCommand) Run(ctx context.Context, args []string) (code int) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err := errors.NewUnexpectedError(fmt.Sprintf("%v", recovered), nil)
			code = NewErrorHandler(r.stdout, r.logger).Handle(err)
		}
	}()

	r.SetArgs(args)
	return NewErrorHandler(r.stdout, r.logger).Handle(r.ExecuteContext(ctx))
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	featuresCmd := &cobra.Command{
		Use:   "features",
		Short: "Run the feature demo",
		Long: `Add three sample tasks, complete the first, list pending tasks and
tasks tagged "development", then export every task to the export path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewFeaturesCommand(r.newApp()).Execute(cmd.Context(), args)
		},
	}

	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Run the sequential processing demo",
		Long:  "Add two sample tasks and announce each in turn, pausing for the process delay before each one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewProcessCommand(r.newApp()).Execute(cmd.Context(), args)
		},
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the tasks stored in an export file",
		Long: `Read a JSON export and print one line per task.

Example:
  tm inspect tasks.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewInspectCommand(r.newApp()).Execute(cmd.Context(), args)
		},
	}

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Browse archived export snapshots",
		Long: `Browse the snapshots stored in the archive database.

Snapshots are recorded after each export when archiving is enabled
(--archive or TM_ARCHIVE_ENABLED=true).`,
	}

	snapshotsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewSnapshotsListCommand(r.newApp()).Execute(cmd.Context(), args)
		},
	}

	snapshotsShowCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the tasks of one snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewSnapshotsShowCommand(r.newApp()).Execute(cmd.Context(), args)
		},
	}

	snapshotsCmd.AddCommand(snapshotsListCmd, snapshotsShowCmd)

	r.cmd.AddCommand(
		featuresCmd,
		processCmd,
		inspectCmd,
		snapshotsCmd,
	)
}

// loadConfig resolves the configuration for cmd and sets up logging
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().Load(cmd.Flags())
	if err != nil {
		return err
	}

	r.config = cfg
	r.logger = logging.New(r.stderr, cfg.Log.Level, cfg.Log.Format)
	r.logger.Debug("configuration loaded",
		"command", cmd.CommandPath(),
		"export_path", cfg.Export.Path,
		"process_delay", cfg.Process.Delay,
		"archive_enabled", cfg.Archive.Enabled)
	return nil
}

func (r *RootCommand) newApp() *App {
	return NewApp(r.stdout, r.config, r.logger)
}
