package cli

import (
	"context"
	"fmt"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// SnapshotsListCommand lists archived snapshots
type SnapshotsListCommand struct {
	app *App
}

// NewSnapshotsListCommand creates a new snapshots list command handler
func NewSnapshotsListCommand(app *App) *SnapshotsListCommand {
	return &SnapshotsListCommand{app: app}
}

// Execute runs the snapshots list command
func (c *SnapshotsListCommand) Execute(ctx context.Context, args []string) error {
	repo, err := config.OpenArchive(c.app.config, c.app.logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	snapshots, err := repo.ListSnapshots(ctx)
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(c.app.out, "No snapshots archived")
		return nil
	}

	for _, snapshot := range snapshots {
		fmt.Fprintf(c.app.out, "🗄️  %s  %s  %d tasks\n",
			snapshot.ID, domain.FormatTimestamp(snapshot.CreatedAt), snapshot.TaskCount)
	}
	return nil
}

// SnapshotsShowCommand prints the tasks of one archived snapshot
type SnapshotsShowCommand struct {
	app *App
}

// NewSnapshotsShowCommand creates a new snapshots show command handler
func NewSnapshotsShowCommand(app *App) *SnapshotsShowCommand {
	return &SnapshotsShowCommand{app: app}
}

// Execute runs the snapshots show command
func (c *SnapshotsShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("snapshots show requires exactly one snapshot id", nil)
	}

	repo, err := config.OpenArchive(c.app.config, c.app.logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	snapshot, err := repo.GetSnapshot(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "🗄️  Snapshot %s (%s, %d tasks)\n",
		snapshot.ID, domain.FormatTimestamp(snapshot.CreatedAt), snapshot.TaskCount)
	printTasks(c.app.out, snapshot.Tasks)
	return nil
}
