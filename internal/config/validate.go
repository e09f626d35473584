package config

import (
	"fmt"

	"nasutil/internal/failure"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateYTDLP(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.QueueFile == "" {
		return invalid("paths.queue_file must be set")
	}
	if c.History.Enabled && c.Paths.HistoryDB == "" {
		return invalid("paths.history_db must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateYTDLP() error {
	if c.YTDLP.Binary == "" {
		return invalid("ytdlp.binary must be set")
	}
	if c.YTDLP.TimeoutSeconds < 0 {
		return invalid("ytdlp.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return invalid(fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid(fmt.Sprintf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level))
	}
	return nil
}

func invalid(message string) error {
	return failure.Wrap(failure.ErrConfig, "validate config", message, nil)
}
