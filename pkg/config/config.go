package config

import (
	"strings"

	"github.com/sdejongh/synctools/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Transfer TransferConfig `yaml:"transfer"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Exclude  []string       `yaml:"exclude"`
}

// TransferConfig holds the external tools used to reach and mirror endpoints
type TransferConfig struct {
	RsyncPath string   `yaml:"rsync_path"`
	SSHPath   string   `yaml:"ssh_path"`
	ExtraArgs []string `yaml:"extra_args"`
	Bandwidth string   `yaml:"bandwidth"` // passed to rsync --bwlimit, empty = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar on terminals
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = no log)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Transfer: TransferConfig{
			RsyncPath: "rsync",
			SSHPath:   "ssh",
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
		},
		Logging: LoggingConfig{
			Format: "json",
			Level:  "info",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Transfer.RsyncPath) == "" {
		return &models.ValidationError{
			Role:   "Config key transfer.rsync_path",
			Reason: "must not be empty",
		}
	}

	if strings.TrimSpace(c.Transfer.SSHPath) == "" {
		return &models.ValidationError{
			Role:   "Config key transfer.ssh_path",
			Reason: "must not be empty",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Role:   "Config key output.format",
			Path:   c.Output.Format,
			Reason: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Role:   "Config key logging.format",
			Path:   c.Logging.Format,
			Reason: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Role:   "Config key logging.level",
			Path:   c.Logging.Level,
			Reason: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
