package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYTDLP()
	c.normalizeLogging()
	if c.History.ListLimit <= 0 {
		c.History.ListLimit = defaultHistoryLimit
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(EnvQueueFile); ok && strings.TrimSpace(value) != "" {
		c.Paths.QueueFile = value
	}
	if value, ok := os.LookupEnv(EnvOutputDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = value
	}

	c.Paths.QueueFile = strings.TrimSpace(c.Paths.QueueFile)
	if c.Paths.QueueFile == "" {
		c.Paths.QueueFile = defaultQueueFile
	}
	var err error
	if c.Paths.QueueFile, err = expandPath(c.Paths.QueueFile); err != nil {
		return fmt.Errorf("paths.queue_file: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}

	// NAS roots include UNC and drive-letter forms, so they are kept verbatim
	// rather than made absolute against the working directory.
	roots := make([]string, 0, len(c.Paths.NASRoots))
	for _, root := range c.Paths.NASRoots {
		if root = strings.TrimSpace(root); root != "" {
			roots = append(roots, root)
		}
	}
	c.Paths.NASRoots = roots
	c.Paths.NASSubdir = strings.Trim(strings.TrimSpace(c.Paths.NASSubdir), "/\\")
	return nil
}

func (c *Config) normalizeYTDLP() {
	c.YTDLP.Binary = strings.TrimSpace(c.YTDLP.Binary)
	if c.YTDLP.Binary == "" {
		c.YTDLP.Binary = defaultYTDLPBinary
	}
	c.YTDLP.Format = strings.TrimSpace(c.YTDLP.Format)
	if c.YTDLP.Format == "" {
		c.YTDLP.Format = defaultYTDLPFormat
	}
	c.YTDLP.MergeFormat = strings.TrimSpace(c.YTDLP.MergeFormat)
	if c.YTDLP.MergeFormat == "" {
		c.YTDLP.MergeFormat = defaultMergeFormat
	}
	c.YTDLP.OutputTemplate = strings.TrimSpace(c.YTDLP.OutputTemplate)
	if c.YTDLP.OutputTemplate == "" {
		c.YTDLP.OutputTemplate = defaultOutputTemplate
	}
	args := make([]string, 0, len(c.YTDLP.ExtraArgs))
	for _, arg := range c.YTDLP.ExtraArgs {
		if arg = strings.TrimSpace(arg); arg != "" {
			args = append(args, arg)
		}
	}
	c.YTDLP.ExtraArgs = args
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.LogFile = strings.TrimSpace(c.Logging.LogFile)
	if c.Logging.LogFile != "" {
		if expanded, err := expandPath(c.Logging.LogFile); err == nil {
			c.Logging.LogFile = expanded
		}
	}
}
