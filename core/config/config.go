// Package config holds the fileprops settings file.
package config

import (
	"fmt"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/logging"
)

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Journal JournalConfig `yaml:"journal"`
	Server  ServerConfig  `yaml:"server"`
	Tracing TracingConfig `yaml:"tracing"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Locale   string `yaml:"locale"`   // "en" or "zh"
	Progress bool   `yaml:"progress"` // Show progress bars for batches
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format"`      // "json" or "text"
	Level      string `yaml:"level"`       // "debug", "info", "warn", "error"
	File       string `yaml:"file"`        // Log file path (empty = stderr)
	MaxSize    int64  `yaml:"max_size"`    // Rotate after this many bytes, 0 = never
	MaxBackups int    `yaml:"max_backups"` // Rotated files kept
}

// JournalConfig controls the SQLite record of batch runs.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // empty = DefaultJournalPath
}

// ServerConfig holds settings for `fileprops serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// TracingConfig toggles span export to stderr.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:   "human",
			Locale:   string(core.LocaleEN),
			Progress: true,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Format:     "text",
			Level:      "info",
			File:       "",
			MaxSize:    10 << 20,
			MaxBackups: 3,
		},
		Journal: JournalConfig{
			Enabled: false,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8765",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	if _, err := core.ParseLocale(c.Output.Locale); err != nil {
		return &ValidationError{
			Field:   "output.locale",
			Message: "must be 'en' or 'zh'",
		}
	}

	validLogFormats := map[string]bool{string(logging.FormatJSON): true, string(logging.FormatText): true}
	if !validLogFormats[c.Logging.Format] {
		return &ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 {
		return &ValidationError{
			Field:   "logging.max_size",
			Message: "rotation limits must not be negative",
		}
	}

	if c.Server.Addr == "" {
		return &ValidationError{
			Field:   "server.addr",
			Message: "must not be empty",
		}
	}

	return nil
}
