package cli

import (
	"context"
	"fmt"
	"strings"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/registry"
)

const bannerWidth = 50

// demoTask is one task added by a demo sequence
type demoTask struct {
	title       string
	description string
	tags        []string
}

var featureTasks = []demoTask{
	{
		title:       "Build code editor",
		description: "Create a modern code editor with Tauri and React",
		tags:        []string{"development", "tauri", "react"},
	},
	{
		title:       "Write documentation",
		description: "Document the API and usage examples",
		tags:        []string{"documentation", "writing"},
	},
	{
		title:       "Add tests",
		description: "Write unit tests for the core functionality",
		tags:        []string{"testing", "development"},
	},
}

var processTasks = []demoTask{
	{title: "Async task 1", description: "First async task", tags: []string{"async"}},
	{title: "Async task 2", description: "Second async task", tags: []string{"async"}},
}

// FeaturesCommand runs the feature demo against a fresh registry
type FeaturesCommand struct {
	app *App
}

// NewFeaturesCommand creates a new features command handler
func NewFeaturesCommand(app *App) *FeaturesCommand {
	return &FeaturesCommand{app: app}
}

// Execute runs the features command
func (c *FeaturesCommand) Execute(ctx context.Context, args []string) error {
	if err := ctx.Err(); err != nil {
		return errors.NewInterruptedError("run features", err)
	}

	out := c.app.out
	reg := registry.New(out, c.app.logger)

	fmt.Fprintln(out, "🚀 Starting Task Manager Demo")
	fmt.Fprintln(out, strings.Repeat("=", bannerWidth))

	addTasks(reg, featureTasks)
	reg.Complete(1)

	pending := reg.PendingTasks()
	fmt.Fprintf(out, "\n📝 Pending tasks: %d\n", len(pending))
	for _, task := range pending {
		fmt.Fprintf(out, "  - %s\n", task.Title)
	}

	devTasks := reg.TasksByTag("development")
	fmt.Fprintf(out, "\n💻 Development tasks: %d\n", len(devTasks))
	for _, task := range devTasks {
		fmt.Fprintf(out, "  %s %s\n", statusIcon(task), task.Title)
	}

	if err := ctx.Err(); err != nil {
		return errors.NewInterruptedError("export tasks", err)
	}

	// A failed export has already been reported and does not stop the demo.
	if err := reg.ExportToFile(c.app.config.Export.Path); err == nil && c.app.config.Archive.Enabled {
		if err := c.archive(ctx, reg.All()); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\n"+strings.Repeat("=", bannerWidth))
	fmt.Fprintln(out, "✨ Demo completed!")
	return nil
}

// archive stores tasks as a new snapshot in the configured archive
func (c *FeaturesCommand) archive(ctx context.Context, tasks []*domain.Task) error {
	repo, err := config.OpenArchive(c.app.config, c.app.logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	snapshot, err := repo.SaveSnapshot(ctx, tasks)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "🗄️  Archived snapshot %s\n", snapshot.ID)
	return nil
}

// ProcessCommand runs the sequential processing demo against a fresh registry
type ProcessCommand struct {
	app *App
}

// NewProcessCommand creates a new process command handler
func NewProcessCommand(app *App) *ProcessCommand {
	return &ProcessCommand{app: app}
}

// Execute runs the process command
func (c *ProcessCommand) Execute(ctx context.Context, args []string) error {
	reg := registry.New(c.app.out, c.app.logger)
	addTasks(reg, processTasks)
	return reg.ProcessSequentially(ctx, c.app.config.Process.Delay)
}

func addTasks(reg *registry.Registry, tasks []demoTask) {
	for _, task := range tasks {
		reg.Add(task.title, task.description, task.tags...)
	}
}

func statusIcon(task *domain.Task) string {
	if task.Completed {
		return "✅"
	}
	return "⏳"
}
