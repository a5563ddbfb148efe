package config

import (
	"strings"

	perrors "github.com/Iron-Ham/peek/internal/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read into the config,
// e.g. PEEK_LOGGING_LEVEL for logging.level.
const EnvPrefix = "PEEK"

// EnvKeyReplacer maps nested config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Config represents the complete peek configuration. Values come from
// command-line flags and PEEK_* environment variables; no configuration
// file is read.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Editor  EditorConfig  `mapstructure:"editor"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// File is the path of the JSON log file. Empty disables logging, since
	// the terminal itself is owned by the viewer.
	File string `mapstructure:"file"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// EditorConfig controls the event loop
type EditorConfig struct {
	// PanicOnReadError makes a failed event read fatal instead of being
	// swallowed (default: false). The terminal is still restored.
	PanicOnReadError bool `mapstructure:"panic_on_read_error"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			File:  "",
			Level: "info",
		},
		Editor: EditorConfig{
			PanicOnReadError: false,
		},
	}
}

// ApplyDefaults registers default values with v
func ApplyDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetDefault("editor.panic_on_read_error", defaults.Editor.PanicOnReadError)
}

// BindEnv makes v read PEEK_* environment variables for every known key,
// e.g. PEEK_LOGGING_FILE for logging.file.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
}

// LoadFrom reads the configuration from v and validates it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, perrors.Wrap(err, "decode configuration")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}
