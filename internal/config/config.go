package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"nasutil/internal/failure"
)

//go:embed sample_config.toml
var sampleConfig string

// Environment variables honoured by Load.
const (
	EnvQueueFile = "NASUTIL_FILE"
	EnvOutputDir = "NASUTIL_DIR"
	EnvConfig    = "NASUTIL_CONFIG"
)

// Paths contains file and directory locations.
type Paths struct {
	QueueFile string   `toml:"queue_file"`
	OutputDir string   `toml:"output_dir"`
	NASRoots  []string `toml:"nas_roots"`
	NASSubdir string   `toml:"nas_subdir"`
	HistoryDB string   `toml:"history_db"`
}

// YTDLP contains settings for the external downloader.
type YTDLP struct {
	Binary         string   `toml:"binary"`
	Format         string   `toml:"format"`
	MergeFormat    string   `toml:"merge_format"`
	OutputTemplate string   `toml:"output_template"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	ExtraArgs      []string `toml:"extra_args"`
}

// Add contains settings for the add command.
type Add struct {
	// Clipboard makes add prefer a URL held on the clipboard when no
	// argument is given.
	Clipboard bool `toml:"clipboard"`
}

// History contains settings for the download attempt log.
type History struct {
	Enabled   bool `toml:"enabled"`
	ListLimit int  `toml:"list_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	LogFile string `toml:"log_file"`
}

// Config encapsulates all configuration values for nasutil.
type Config struct {
	Paths   Paths   `toml:"paths"`
	YTDLP   YTDLP   `toml:"ytdlp"`
	Add     Add     `toml:"add"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error; defaults and environment overrides still apply. The
// returned config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, failure.Wrap(failure.ErrConfig, "open config", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, failure.Wrap(failure.ErrConfig, "parse config", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path == "" {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, failure.Wrap(failure.ErrConfig, "stat config", expanded, err)
	}
	if info.IsDir() {
		return "", false, failure.Wrap(failure.ErrConfig, "stat config", expanded+" is a directory", nil)
	}
	return expanded, true, nil
}

// ResolveOutputDir returns the directory downloads are written to. An
// explicit output_dir (or NASUTIL_DIR) wins; otherwise the first existing
// NAS root is used, joined with nas_subdir.
func (c *Config) ResolveOutputDir() (string, error) {
	if c.Paths.OutputDir != "" {
		return c.Paths.OutputDir, nil
	}
	for _, root := range c.Paths.NASRoots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		if c.Paths.NASSubdir == "" {
			return root, nil
		}
		return filepath.Join(root, c.Paths.NASSubdir), nil
	}
	return "", failure.Wrap(failure.ErrConfig, "resolve output directory",
		fmt.Sprintf("no NAS root found among %s; set %s or paths.output_dir", strings.Join(c.Paths.NASRoots, ", "), EnvOutputDir), nil)
}

// QueueStagingFile returns the sibling path used for atomic queue replacement.
func (c *Config) QueueStagingFile() string {
	return c.Paths.QueueFile + ".bak"
}

// SetQueueFile overrides the queue file path, expanding it like every other path.
func (c *Config) SetQueueFile(path string) error {
	expanded, err := expandPath(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("queue file: %w", err)
	}
	if expanded != "" {
		c.Paths.QueueFile = expanded
	}
	return nil
}

// SetOutputDir overrides the download directory.
func (c *Config) SetOutputDir(path string) error {
	expanded, err := expandPath(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	if expanded != "" {
		c.Paths.OutputDir = expanded
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", failure.Wrap(failure.ErrConfig, "resolve home directory", "", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", failure.Wrap(failure.ErrConfig, "resolve absolute path", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
