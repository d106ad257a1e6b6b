package sqlite

import (
	"time"

	"task-manager/internal/domain"
)

// Snapshot describes one archived registry state
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	TaskCount int
}

// SnapshotWithTasks is a snapshot together with its tasks in registry order
type SnapshotWithTasks struct {
	Snapshot
	Tasks []*domain.Task
}
