package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/export"
)

// InspectCommand prints the tasks stored in an export file
type InspectCommand struct {
	app *App
}

// NewInspectCommand creates a new inspect command handler
func NewInspectCommand(app *App) *InspectCommand {
	return &InspectCommand{app: app}
}

// Execute runs the inspect command
func (c *InspectCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("inspect requires exactly one file", nil)
	}
	path := args[0]

	records, err := export.ReadFile(path)
	if err != nil {
		return errors.NewIOError("read export", path, err)
	}

	tasks := make([]*domain.Task, 0, len(records))
	for _, record := range records {
		task, err := record.ToTask()
		if err != nil {
			return errors.NewIOError("read export", path, err).WithContext("task_id", record.ID)
		}
		tasks = append(tasks, task)
	}

	c.app.logger.Debug("export inspected", "path", path, "tasks", len(tasks))
	fmt.Fprintf(c.app.out, "📂 %d tasks in %s\n", len(tasks), path)
	printTasks(c.app.out, tasks)
	return nil
}

// printTasks writes one status line per task
func printTasks(w io.Writer, tasks []*domain.Task) {
	for _, task := range tasks {
		line := fmt.Sprintf("  %s #%d %s", statusIcon(task), task.ID, task.Title)
		if len(task.Tags) > 0 {
			line += " [" + strings.Join(task.Tags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}
