package ytdlp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"nasutil/internal/failure"
	"nasutil/internal/linesplit"
	"nasutil/internal/logging"
)

const stderrTailLines = 5

type commandExecutor struct {
	logger *slog.Logger
}

// Run reads stdout on the calling goroutine so events are delivered in
// order. Stderr is drained concurrently and its last lines are attached to
// a non-zero exit error.
func (e commandExecutor) Run(ctx context.Context, binary string, args []string, dir string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Dir = dir
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return failure.Wrap(failure.ErrSubprocess, "start "+binary, "", err)
	}

	tail := newTailBuffer(stderrTailLines)
	var drain errgroup.Group
	drain.Go(func() error {
		for line, err := range linesplit.Lines(stderr) {
			if err != nil {
				_, _ = io.Copy(io.Discard, stderr)
				return nil
			}
			if e.logger != nil && line != "" {
				e.logger.Debug("yt-dlp stderr", logging.String("line", line))
			}
			tail.add(line)
		}
		return nil
	})

	var scanErr error
	for line, err := range linesplit.Lines(stdout) {
		if err != nil {
			scanErr = err
			break
		}
		if onStdout != nil {
			onStdout(line)
		}
	}
	if scanErr != nil {
		_ = cmd.Process.Kill()
		_, _ = io.Copy(io.Discard, stdout)
	}
	_ = drain.Wait()

	waitErr := cmd.Wait()
	if scanErr != nil {
		return failure.Wrap(failure.ErrSubprocess, "scan output", "", scanErr)
	}
	if waitErr != nil {
		return failure.Wrap(failure.ErrSubprocess, binary, tail.String(), waitErr)
	}
	return nil
}

type tailBuffer struct {
	mu    sync.Mutex
	limit int
	lines []string
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, " | ")
}
