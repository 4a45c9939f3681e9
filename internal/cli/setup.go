package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sdejongh/synctools/pkg/config"
	"github.com/sdejongh/synctools/pkg/logging"
	"github.com/sdejongh/synctools/pkg/storage"
)

// loadConfig loads the configuration file and applies the global flags on
// top of it
func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.global.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if a.global.LogFile != "" {
		cfg.Logging.File = a.global.LogFile
	}
	if a.global.LogFormat != "" {
		cfg.Logging.Format = a.global.LogFormat
	}
	if a.global.LogLevel != "" {
		cfg.Logging.Level = a.global.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createLogger creates a logger based on configuration. Every entry carries
// the run ID and the command name.
func createLogger(cfg config.LoggingConfig, command string) (logging.Logger, error) {
	// If no log file specified, return null logger
	if cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch cfg.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	logger, err := logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   cfg.File,
		Format: format,
		Level:  logging.ParseLevel(cfg.Level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger.WithFields(logging.Fields{
		"run_id":  uuid.New().String(),
		"command": command,
	}), nil
}

// workingDir returns the current directory as a local endpoint
func (a *App) workingDir(logger logging.Logger) (*storage.Local, error) {
	cwd, err := a.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine current directory: %w", err)
	}
	return storage.NewLocal(cwd).WithLogger(logger), nil
}

// pickExclude returns the flag patterns when given, the config ones otherwise
func pickExclude(flag, cfg []string) []string {
	if len(flag) > 0 {
		return flag
	}
	return cfg
}
