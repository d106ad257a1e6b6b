// Package sqlite archives registry snapshots in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory archive
const MemoryPath = ":memory:"

// Repository defines the snapshot archive operations
type Repository interface {
	SaveSnapshot(ctx context.Context, tasks []*domain.Task) (*Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*SnapshotWithTasks, error)
	ListSnapshots(ctx context.Context) ([]*Snapshot, error)
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// New opens the archive at dbPath, creating the parent directory and applying
// migrations as needed
func New(dbPath string, logger *slog.Logger) (*SQLiteRepository, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, errors.NewIOError("create archive directory", filepath.Dir(dbPath), err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// an in-memory database exists per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(db, logger); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveSnapshot stores tasks, in order and with their tags, under a new
// snapshot id
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, tasks []*domain.Task) (*Snapshot, error) {
	snapshot := &Snapshot{
		ID:        uuid.New().String(),
		CreatedAt: r.now(),
		TaskCount: len(tasks),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, HandleDatabaseError("begin snapshot transaction", err)
	}
	defer tx.Rollback()

	err = Execute(ctx, tx, "insert snapshot",
		`INSERT INTO snapshots (id, created_at, task_count) VALUES (?, ?, ?)`,
		snapshot.ID, domain.FormatTimestamp(snapshot.CreatedAt), snapshot.TaskCount)
	if err != nil {
		return nil, err
	}

	for position, task := range tasks {
		err = Execute(ctx, tx, "insert snapshot task",
			`INSERT INTO snapshot_tasks (snapshot_id, task_id, position, title, description, completed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snapshot.ID, task.ID, position, task.Title, task.Description, task.Completed, domain.FormatTimestamp(task.CreatedAt))
		if err != nil {
			return nil, err
		}

		for tagPosition, tag := range task.Tags {
			err = Execute(ctx, tx, "insert snapshot tag",
				`INSERT INTO snapshot_task_tags (snapshot_id, task_id, position, tag) VALUES (?, ?, ?, ?)`,
				snapshot.ID, task.ID, tagPosition, tag)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, HandleDatabaseError("commit snapshot", err)
	}

	r.logger.Debug("snapshot archived", "snapshot_id", snapshot.ID, "tasks", snapshot.TaskCount)
	return snapshot, nil
}

// GetSnapshot retrieves a snapshot and its tasks by id
func (r *SQLiteRepository) GetSnapshot(ctx context.Context, id string) (*SnapshotWithTasks, error) {
	snapshot, err := QuerySingle(ctx, r.db,
		`SELECT id, created_at, task_count FROM snapshots WHERE id = ?`,
		ScanSnapshot, "snapshot", id, id)
	if err != nil {
		return nil, err
	}

	tasks, err := QueryMultiple(ctx, r.db,
		`SELECT task_id, title, description, completed, created_at
		FROM snapshot_tasks
		WHERE snapshot_id = ?
		ORDER BY position ASC`,
		ScanTasks, "snapshot tasks", id)
	if err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, id, tasks); err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return &SnapshotWithTasks{Snapshot: *snapshot, Tasks: tasks}, nil
}

// ListSnapshots retrieves all snapshots, newest first
func (r *SQLiteRepository) ListSnapshots(ctx context.Context) ([]*Snapshot, error) {
	return QueryMultiple(ctx, r.db,
		`SELECT id, created_at, task_count FROM snapshots ORDER BY rowid DESC`,
		ScanSnapshots, "snapshots")
}

// attachTags loads every tag of the snapshot and appends them to the owning
// tasks in stored order
func (r *SQLiteRepository) attachTags(ctx context.Context, snapshotID string, tasks []*domain.Task) error {
	byID := make(map[int64]*domain.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, tag FROM snapshot_task_tags
		WHERE snapshot_id = ?
		ORDER BY task_id ASC, position ASC`, snapshotID)
	if err != nil {
		return HandleDatabaseError("query snapshot tags", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID int64
		var tag string
		if err := rows.Scan(&taskID, &tag); err != nil {
			return HandleDatabaseError("scan snapshot tags", err)
		}
		task, ok := byID[taskID]
		if !ok {
			return HandleDatabaseError("attach snapshot tags", fmt.Errorf("tag references unknown task %d", taskID))
		}
		task.Tags = append(task.Tags, tag)
	}
	if err := rows.Err(); err != nil {
		return HandleDatabaseError("scan snapshot tags", err)
	}
	return nil
}
