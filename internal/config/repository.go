package config

import (
	"log/slog"

	"task-manager/internal/repository/sqlite"
)

// OpenArchive opens the snapshot archive configured in cfg
func OpenArchive(cfg *Config, logger *slog.Logger) (sqlite.Repository, error) {
	return sqlite.New(cfg.Archive.Path, logger)
}

// OpenTestArchive opens a private in-memory archive
func OpenTestArchive(logger *slog.Logger) (sqlite.Repository, error) {
	return sqlite.New(sqlite.MemoryPath, logger)
}
