package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"task-manager/internal/errors"
)

// EnvPrefix is prepended to every environment variable, e.g. TM_EXPORT_PATH
const EnvPrefix = "TM"

// ConfigFileFlag names the flag pointing at an optional YAML config file
const ConfigFileFlag = "config"

// flagBindings maps configuration keys to their command-line flag names
var flagBindings = map[string]string{
	"export.path":     "export-path",
	"process.delay":   "process-delay",
	"log.level":       "log-level",
	"log.format":      "log-format",
	"archive.enabled": "archive",
	"archive.path":    "archive-path",
}

// AddFlags registers the configuration flags on flags
func AddFlags(flags *pflag.FlagSet) {
	defaults := NewConfig()

	flags.String(ConfigFileFlag, "", "Path to a YAML configuration file")
	flags.String("export-path", defaults.Export.Path, "Export file path (overrides TM_EXPORT_PATH)")
	flags.Duration("process-delay", defaults.Process.Delay, "Pause between processed tasks (overrides TM_PROCESS_DELAY)")
	flags.String("log-level", defaults.Log.Level, "Log level: debug, info, warn, error (overrides TM_LOG_LEVEL)")
	flags.String("log-format", defaults.Log.Format, "Log format: text or json (overrides TM_LOG_FORMAT)")
	flags.Bool("archive", defaults.Archive.Enabled, "Archive every export as a SQLite snapshot (overrides TM_ARCHIVE_ENABLED)")
	flags.String("archive-path", defaults.Archive.Path, "Snapshot archive database (overrides TM_ARCHIVE_PATH)")
}

// Loader handles loading configuration from multiple sources
type Loader struct {
	v        *viper.Viper
	validate *validator.Validate
}

// NewLoader creates a new configuration loader seeded with the defaults
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := NewConfig()
	v.SetDefault("export.path", defaults.Export.Path)
	v.SetDefault("process.delay", defaults.Process.Delay)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("archive.enabled", defaults.Archive.Enabled)
	v.SetDefault("archive.path", defaults.Archive.Path)

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Loader{v: v, validate: validate}
}

// Load loads configuration using the cascading strategy:
// defaults, then the optional config file, then TM_* environment variables,
// then flags that were set explicitly. flags may be nil.
func (l *Loader) Load(flags *pflag.FlagSet) (*Config, error) {
	if flags != nil {
		if err := l.bindFlags(flags); err != nil {
			return nil, err
		}
		if path, _ := flags.GetString(ConfigFileFlag); path != "" {
			l.v.SetConfigFile(path)
			if err := l.v.ReadInConfig(); err != nil {
				return nil, errors.NewValidationError(fmt.Sprintf("failed to read config file %s", path), err)
			}
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, errors.NewValidationError("failed to decode configuration", err)
	}

	if err := l.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its validation tags
func (l *Loader) Validate(cfg *Config) error {
	err := l.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return errors.NewValidationError("invalid configuration", err)
	}

	fieldErr := validationErrs[0]
	field := fieldErr.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	message := fmt.Sprintf("%s: failed %q validation", field, fieldErr.Tag())
	if fieldErr.Param() != "" {
		message = fmt.Sprintf("%s: must satisfy %s=%s", field, fieldErr.Tag(), fieldErr.Param())
	}
	return errors.NewValidationError(message, err).WithContext("field", field)
}

func (l *Loader) bindFlags(flags *pflag.FlagSet) error {
	for key, name := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return errors.NewValidationError(fmt.Sprintf("failed to bind flag --%s", name), err)
		}
	}
	return nil
}
