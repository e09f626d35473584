package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"nasutil/internal/config"
	"nasutil/internal/failure"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvQueueFile, "")
	t.Setenv(config.EnvOutputDir, "")
	t.Setenv(config.EnvConfig, "")
	return home
}

func TestLoadDefaultsExpandPaths(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(home, ".config", "nasutil", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Paths.QueueFile != filepath.Join(home, ".nasutil-to-download.txt") {
		t.Fatalf("unexpected queue file %q", cfg.Paths.QueueFile)
	}
	if cfg.QueueStagingFile() != cfg.Paths.QueueFile+".bak" {
		t.Fatalf("unexpected staging file %q", cfg.QueueStagingFile())
	}
	if cfg.Paths.HistoryDB != filepath.Join(home, ".local", "share", "nasutil", "history.db") {
		t.Fatalf("unexpected history db %q", cfg.Paths.HistoryDB)
	}
	if cfg.Paths.OutputDir != "" {
		t.Fatalf("expected empty output dir, got %q", cfg.Paths.OutputDir)
	}
	if !reflect.DeepEqual(cfg.Paths.NASRoots, []string{"/media/nas", "//DAVISON-NAS/918-share", "Y://"}) {
		t.Fatalf("unexpected NAS roots %q", cfg.Paths.NASRoots)
	}
	if cfg.YTDLP.Binary != "yt-dlp" {
		t.Fatalf("unexpected binary %q", cfg.YTDLP.Binary)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	queuePath := filepath.Join(dir, "queue.txt")
	t.Setenv(config.EnvQueueFile, queuePath)
	t.Setenv(config.EnvOutputDir, dir)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.QueueFile != queuePath {
		t.Fatalf("expected env queue file, got %q", cfg.Paths.QueueFile)
	}
	out, err := cfg.ResolveOutputDir()
	if err != nil {
		t.Fatalf("ResolveOutputDir: %v", err)
	}
	if out != dir {
		t.Fatalf("expected env output dir, got %q", out)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "nasutil.toml")

	type payload struct {
		Paths struct {
			QueueFile string   `toml:"queue_file"`
			NASRoots  []string `toml:"nas_roots"`
		} `toml:"paths"`
		YTDLP struct {
			Binary    string   `toml:"binary"`
			ExtraArgs []string `toml:"extra_args"`
		} `toml:"ytdlp"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.QueueFile = filepath.Join(dir, "custom-queue.txt")
	custom.Paths.NASRoots = []string{" /srv/nas ", ""}
	custom.YTDLP.Binary = "/opt/yt-dlp"
	custom.YTDLP.ExtraArgs = []string{"--cookies-from-browser", " firefox "}
	custom.Logging.Level = "DEBUG"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.QueueFile != custom.Paths.QueueFile {
		t.Fatalf("unexpected queue file %q", cfg.Paths.QueueFile)
	}
	if !reflect.DeepEqual(cfg.Paths.NASRoots, []string{"/srv/nas"}) {
		t.Fatalf("unexpected NAS roots %q", cfg.Paths.NASRoots)
	}
	if cfg.YTDLP.Binary != "/opt/yt-dlp" {
		t.Fatalf("unexpected binary %q", cfg.YTDLP.Binary)
	}
	if !reflect.DeepEqual(cfg.YTDLP.ExtraArgs, []string{"--cookies-from-browser", "firefox"}) {
		t.Fatalf("unexpected extra args %q", cfg.YTDLP.ExtraArgs)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased level, got %q", cfg.Logging.Level)
	}
	if cfg.YTDLP.Format != config.Default().YTDLP.Format {
		t.Fatalf("expected default format to survive partial config, got %q", cfg.YTDLP.Format)
	}
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(configPath, []byte("[add]\nclipboard = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.EnvConfig, configPath)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected env config path, got %q exists=%v", resolved, exists)
	}
	if !cfg.Add.Clipboard {
		t.Fatal("expected clipboard enabled from config")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"log level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"timeout", "[ytdlp]\ntimeout_seconds = -1\n", "ytdlp.timeout_seconds"},
		{"syntax", "[paths\n", "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			configPath := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(configPath, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, failure.ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}

func TestResolveOutputDirAutodetectsNASRoot(t *testing.T) {
	cfg := config.Default()
	present := t.TempDir()
	cfg.Paths.NASRoots = []string{filepath.Join(present, "missing"), present}
	cfg.Paths.NASSubdir = "syncthing"

	out, err := cfg.ResolveOutputDir()
	if err != nil {
		t.Fatalf("ResolveOutputDir: %v", err)
	}
	if out != filepath.Join(present, "syncthing") {
		t.Fatalf("unexpected output dir %q", out)
	}
}

func TestResolveOutputDirWithoutRoots(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.NASRoots = []string{filepath.Join(t.TempDir(), "absent")}

	_, err := cfg.ResolveOutputDir()
	if !errors.Is(err, failure.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), config.EnvOutputDir) {
		t.Fatalf("expected hint about %s, got %v", config.EnvOutputDir, err)
	}
}

func TestSetOverrides(t *testing.T) {
	isolate(t)
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dir := t.TempDir()
	if err := cfg.SetQueueFile(filepath.Join(dir, "q.txt")); err != nil {
		t.Fatalf("SetQueueFile: %v", err)
	}
	if err := cfg.SetOutputDir(""); err != nil {
		t.Fatalf("SetOutputDir: %v", err)
	}
	if cfg.Paths.QueueFile != filepath.Join(dir, "q.txt") {
		t.Fatalf("unexpected queue file %q", cfg.Paths.QueueFile)
	}
	if cfg.Paths.OutputDir != "" {
		t.Fatalf("expected empty override to be ignored, got %q", cfg.Paths.OutputDir)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.YTDLP.OutputTemplate != "%(uploader)s---%(title)s.%(ext)s" {
		t.Fatalf("unexpected template %q", cfg.YTDLP.OutputTemplate)
	}
}
