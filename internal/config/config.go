package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the task manager
type Config struct {
	Export  ExportConfig  `mapstructure:"export"`
	Process ProcessConfig `mapstructure:"process"`
	Log     LogConfig     `mapstructure:"log"`
	Archive ArchiveConfig `mapstructure:"archive"`
}

// ExportConfig controls where the JSON export is written
type ExportConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ProcessConfig controls the sequential processing demo
type ProcessConfig struct {
	Delay time.Duration `mapstructure:"delay" validate:"gte=0s"`
}

// LogConfig controls structured logging on stderr
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// ArchiveConfig controls the optional SQLite snapshot archive
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Export: ExportConfig{
			Path: "tasks.json",
		},
		Process: ProcessConfig{
			Delay: 100 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Path:    defaultArchivePath(),
		},
	}
}

// defaultArchivePath returns ~/.tm/archive.db, or a path relative to the
// working directory when the home directory is unknown
func defaultArchivePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tm", "archive.db")
	}
	return filepath.Join(homeDir, ".tm", "archive.db")
}
