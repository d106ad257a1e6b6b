// Package registry holds the in-memory task registry.
//
// A Registry is owned by a single caller at a time and performs no locking.
// Every mutating or reporting operation writes a short human-readable notice
// to the registry's output writer; structured diagnostics go to its logger.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/export"
	"task-manager/internal/logging"
)

// Registry is an in-memory store of tasks keyed by id.
// Iteration order is insertion order, which is also ascending id order.
type Registry struct {
	tasks  map[int64]*domain.Task
	order  []int64
	nextID int64

	out    io.Writer
	logger *slog.Logger
	now    func() time.Time
}

// New creates an empty registry writing notices to out.
// A nil out discards notices and a nil logger discards logs.
func New(out io.Writer, logger *slog.Logger) *Registry {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Registry{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// Add creates a pending task with the next id and stores it.
// Empty titles and descriptions are accepted; tags default to none.
func (r *Registry) Add(title, description string, tags ...string) *domain.Task {
	task := domain.NewTask(r.nextID, title, description, tags, r.now())

	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	r.nextID++

	r.logger.Debug("task added", "task_id", task.ID, "title", task.Title, "tags", task.Tags)
	r.notify("✅ Added task: %s", task.Title)
	return task
}

// Complete marks the task with the given id as completed.
// It reports false when no such task exists. Completing an already completed
// task is a no-op that still reports true.
func (r *Registry) Complete(id int64) bool {
	task, ok := r.tasks[id]
	if !ok {
		r.logger.Debug("complete skipped", "task_id", id, "error", errors.NewNotFoundError("task", strconv.FormatInt(id, 10)))
		r.notify("❌ Task %d not found", id)
		return false
	}

	task.Completed = true
	r.logger.Debug("task completed", "task_id", id)
	r.notify("🎉 Completed task: %s", task.Title)
	return true
}

// Get returns the task with the given id or a NotFound error.
func (r *Registry) Get(id int64) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	return task, nil
}

// All returns every task in registry order.
func (r *Registry) All() []*domain.Task {
	return r.filter(func(*domain.Task) bool { return true })
}

// Len returns the number of tasks in the registry.
func (r *Registry) Len() int {
	return len(r.order)
}

// TasksByTag returns the tasks carrying tag, compared exactly.
func (r *Registry) TasksByTag(tag string) []*domain.Task {
	return r.filter(func(task *domain.Task) bool { return task.HasTag(tag) })
}

// PendingTasks returns the tasks that are not completed yet.
func (r *Registry) PendingTasks() []*domain.Task {
	return r.filter((*domain.Task).IsPending)
}

// ExportToFile writes every task to path as indented JSON, replacing any
// existing file. On failure a notice is written and an IO error returned; the
// registry itself is never modified.
func (r *Registry) ExportToFile(path string) error {
	records := export.FromTasks(r.All())

	if err := export.WriteFile(path, records); err != nil {
		appErr := errors.NewIOError("export tasks", path, err).WithContext("tasks", len(records))
		r.logger.Error("export failed", "path", path, "error", err)
		r.notify("❌ Error exporting tasks: %v", err)
		return appErr
	}

	r.logger.Debug("tasks exported", "path", path, "tasks", len(records))
	r.notify("📄 Exported %d tasks to %s", len(records), path)
	return nil
}

// ProcessSequentially walks the tasks in registry order, pausing for delay
// before announcing each one. It does not modify any task. If ctx is
// cancelled during a pause the walk stops with an Interrupted error.
func (r *Registry) ProcessSequentially(ctx context.Context, delay time.Duration) error {
	r.notify("🔄 Processing tasks asynchronously...")

	for _, task := range r.All() {
		if err := pause(ctx, delay); err != nil {
			r.logger.Debug("processing interrupted", "task_id", task.ID)
			return errors.NewInterruptedError("process tasks", err)
		}
		r.notify("  Processing: %s", task.Title)
	}

	r.notify("✅ Async processing completed")
	return nil
}

func (r *Registry) filter(keep func(*domain.Task) bool) []*domain.Task {
	result := make([]*domain.Task, 0, len(r.order))
	for _, id := range r.order {
		if task := r.tasks[id]; keep(task) {
			result = append(result, task)
		}
	}
	return result
}

func (r *Registry) notify(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// pause blocks for d or until ctx is done, whichever comes first.
func pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
