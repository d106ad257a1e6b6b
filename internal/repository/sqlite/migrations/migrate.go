// Package migrations holds the archive schema and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var migrationsFS embed.FS

// TableName is the goose version table inside the archive database
const TableName = "schema_migrations"

// goose keeps its configuration in package globals
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at debug level
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "migrations")
}

// Fatalf logs at error level without exiting; the failure is also returned
// from RunMigrations
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

// RunMigrations applies all pending migrations to db
func RunMigrations(db *sql.DB, logger *slog.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: logger})
	goose.SetTableName(TableName)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// CurrentVersion returns the latest applied migration version
func CurrentVersion(db *sql.DB) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(TableName)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersion(db)
}
