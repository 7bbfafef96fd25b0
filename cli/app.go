package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/batch"
	"github.com/ankit-chaubey/fileprops/core/config"
	"github.com/ankit-chaubey/fileprops/core/engine"
	"github.com/ankit-chaubey/fileprops/core/journal"
	"github.com/ankit-chaubey/fileprops/core/logging"
	"github.com/ankit-chaubey/fileprops/core/telemetry"
	"github.com/spf13/cobra"
)

// app is everything a command needs, built from the config file and the
// global flags.
type app struct {
	cfg      *config.Config
	printer  *core.Printer
	logger   logging.Logger
	registry *core.Registry
	runner   *batch.Runner
	journal  *journal.Journal
	shutdown telemetry.ShutdownFunc
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(globalFlags.ConfigFile)
	if err != nil {
		return nil, err
	}
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func applyFlagsToConfig(cfg *config.Config) {
	if globalFlags.JSON {
		cfg.Output.Format = "json"
	}
	if globalFlags.Locale != "" {
		cfg.Output.Locale = globalFlags.Locale
	}
	if globalFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = globalFlags.LogFile
	}
	if globalFlags.LogFormat != "" {
		cfg.Logging.Format = globalFlags.LogFormat
	}
	if globalFlags.LogLevel != "" {
		cfg.Logging.Level = globalFlags.LogLevel
	}
	if globalFlags.Journal {
		cfg.Journal.Enabled = true
	}
	if globalFlags.Trace {
		cfg.Tracing.Enabled = true
	}
}

// newApp wires the registry and runner. The journal is opened only when
// withJournal is set and the journal is enabled.
func newApp(cmd *cobra.Command, withJournal bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	loc, _ := core.ParseLocale(cfg.Output.Locale)

	a := &app{cfg: cfg}
	a.printer = core.NewPrinter(cfg.Output.Format == "json", globalFlags.Verbose, loc)
	a.printer.Quiet = globalFlags.Quiet
	a.printer.Writer = cmd.OutOrStdout()
	a.printer.ErrWriter = cmd.ErrOrStderr()

	a.logger, err = createLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfg.Tracing.Enabled {
		a.shutdown, err = telemetry.Init(cmd.ErrOrStderr(), Version)
		if err != nil {
			a.logger.Close()
			return nil, fmt.Errorf("failed to start tracing: %w", err)
		}
	}

	a.registry = engine.New(a.logger, engine.Options{})
	a.runner = batch.NewRunner(a.registry, a.logger)

	if withJournal && cfg.Journal.Enabled {
		path, err := cfg.JournalPath()
		if err != nil {
			a.Close()
			return nil, err
		}
		a.journal, err = journal.Open(path, a.logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.runner.AddObserver(a.journal)
	}
	return a, nil
}

// Close flushes spans and releases the journal and the log file.
func (a *app) Close() {
	if a.shutdown != nil {
		if err := a.shutdown(context.Background()); err != nil {
			a.logger.Warn(context.Background(), "failed to flush spans", logging.Fields{"error": err.Error()})
		}
	}
	if a.journal != nil {
		a.journal.Close()
	}
	a.logger.Close()
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig, stderr io.Writer) (logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NewNullLogger(), nil
	}

	format := logging.ParseFormat(cfg.Format)
	level := logging.ParseLevel(cfg.Level)
	if cfg.File == "" {
		return logging.NewWriterLogger(stderr, format, level), nil
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      level,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
