package sqlite

import (
	"task-manager/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanSnapshot scans a single snapshot from a database row
func ScanSnapshot(scanner Scanner) (*Snapshot, error) {
	snapshot := &Snapshot{}
	var createdAt string
	var taskCount int64

	if err := scanner.Scan(&snapshot.ID, &createdAt, &taskCount); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}
	snapshot.CreatedAt = parsed
	snapshot.TaskCount = int(taskCount)
	return snapshot, nil
}

// ScanSnapshots scans multiple snapshots from database rows
func ScanSnapshots(rows Rows) ([]*Snapshot, error) {
	var snapshots []*Snapshot
	for rows.Next() {
		snapshot, err := ScanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// ScanTask scans a single archived task without its tags
func ScanTask(scanner Scanner) (*domain.Task, error) {
	var (
		id          int64
		title       string
		description string
		completed   int64
		createdAt   string
	)

	if err := scanner.Scan(&id, &title, &description, &completed, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}

	task := domain.NewTask(id, title, description, nil, parsed)
	task.Completed = completed != 0
	return task, nil
}

// ScanTasks scans multiple archived tasks from database rows
func ScanTasks(rows Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
