package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"nasutil/internal/config"
	"nasutil/internal/failure"
	"nasutil/internal/logging"
)

// Fetcher defines the behaviour required by the download driver.
type Fetcher interface {
	Download(ctx context.Context, url, destDir string, onEvent func(Event)) error
}

// Executor abstracts command execution for testability. Run starts binary
// in dir and calls onStdout for every stdout line until the process exits.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, dir string, onStdout func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger routes yt-dlp stderr output to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary         string
	format         string
	mergeFormat    string
	outputTemplate string
	extraArgs      []string
	timeout        time.Duration
	logger         *slog.Logger
	exec           Executor
}

// New constructs a yt-dlp client from the [ytdlp] configuration section.
func New(cfg config.YTDLP, opts ...Option) (*Client, error) {
	binary := strings.TrimSpace(cfg.Binary)
	if binary == "" {
		return nil, failure.Wrap(failure.ErrConfig, "ytdlp", "binary required", nil)
	}
	client := &Client{
		binary:         binary,
		format:         cfg.Format,
		mergeFormat:    cfg.MergeFormat,
		outputTemplate: cfg.OutputTemplate,
		extraArgs:      append([]string(nil), cfg.ExtraArgs...),
		timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.exec == nil {
		client.exec = commandExecutor{logger: client.logger}
	}
	return client, nil
}

// Binary returns the executable the client launches.
func (c *Client) Binary() string { return c.binary }

// Args returns the argument list used to download url.
func (c *Client) Args(url string) []string {
	args := []string{
		"-f", c.format,
		"--no-playlist",
		"--progress",
		"--merge-output-format", c.mergeFormat,
	}
	args = append(args, c.extraArgs...)
	args = append(args,
		url,
		"-o", c.outputTemplate,
		"--restrict-filenames",
	)
	return args
}

// Download runs yt-dlp for url with destDir as the working directory and
// reports destination and progress events as they are printed. The call
// blocks until the subprocess exits.
func (c *Client) Download(ctx context.Context, url, destDir string, onEvent func(Event)) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return failure.Wrap(failure.ErrValidation, "ytdlp", "url required", nil)
	}
	if destDir == "" {
		return failure.Wrap(failure.ErrConfig, "ytdlp", "destination directory required", nil)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return failure.Wrap(failure.ErrIO, "create destination", destDir, err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := c.exec.Run(runCtx, c.binary, c.Args(url), destDir, func(line string) {
		if onEvent == nil {
			return
		}
		if event, ok := ParseLine(line); ok {
			onEvent(event)
		}
	})
	if err == nil {
		return nil
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return failure.Wrap(failure.ErrSubprocess, "ytdlp", fmt.Sprintf("timed out after %s", c.timeout), err)
	}
	if errors.Is(err, failure.ErrSubprocess) || errors.Is(err, failure.ErrDecode) {
		return err
	}
	return failure.Wrap(failure.ErrSubprocess, "ytdlp", "", err)
}

// Version returns the first line yt-dlp prints for --version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var version string
	err := c.exec.Run(ctx, c.binary, []string{"--version"}, "", func(line string) {
		if version == "" {
			version = strings.TrimSpace(line)
		}
	})
	if err != nil {
		return "", failure.Wrap(failure.ErrSubprocess, "ytdlp", "version", err)
	}
	return version, nil
}
