package downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"nasutil/internal/failure"
	"nasutil/internal/history"
	"nasutil/internal/logging"
	"nasutil/internal/queue"
	"nasutil/internal/services"
	"nasutil/internal/services/ytdlp"
)

// DefaultTitleWidth is the number of runes of the title shown on the progress line.
const DefaultTitleWidth = 40

// Queue is the subset of queue.Store the driver needs.
type Queue interface {
	Load() ([]string, error)
	RemoveFirst(url string) (bool, error)
}

// Recorder persists attempt outcomes.
type Recorder interface {
	Record(ctx context.Context, attempt history.Attempt) (history.Attempt, error)
}

// Checker gates a run on environment readiness.
type Checker interface {
	Check(ctx context.Context) error
}

// Options configures a Driver.
type Options struct {
	Queue     Queue
	Fetcher   ytdlp.Fetcher
	OutputDir string
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	// History and Preflight are optional.
	History   Recorder
	Preflight Checker
	// Interactive redraws a progress line on Stdout; otherwise progress is
	// sampled into the logger at debug level.
	Interactive bool
	TitleWidth  int
	RunID       string
	Now         func() time.Time
}

// Summary reports what a run did.
type Summary struct {
	RunID     string
	Attempted int
	Succeeded []string
	Failed    []queue.Failed
}

// Driver runs the download loop.
type Driver struct {
	opts   Options
	logger *slog.Logger
}

// New validates opts and returns a Driver.
func New(opts Options) (*Driver, error) {
	if opts.Queue == nil {
		return nil, failure.Wrap(failure.ErrConfig, "downloader", "queue store is required", nil)
	}
	if opts.Fetcher == nil {
		return nil, failure.Wrap(failure.ErrConfig, "downloader", "fetcher is required", nil)
	}
	if opts.OutputDir == "" {
		return nil, failure.Wrap(failure.ErrConfig, "downloader", "output directory is required", nil)
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.TitleWidth <= 0 {
		opts.TitleWidth = DefaultTitleWidth
	}
	if opts.RunID == "" {
		opts.RunID = history.NewRunID()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Driver{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "downloader"),
	}, nil
}

// Run downloads queue entries in file order until the queue is empty, the
// context is cancelled, or the queue can no longer be persisted.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: d.opts.RunID}
	ctx = services.WithRunID(ctx, d.opts.RunID)
	logger := logging.WithContext(ctx, d.logger)

	if d.opts.Preflight != nil {
		if err := d.opts.Preflight.Check(ctx); err != nil {
			return summary, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("download run cancelled", logging.Int("attempted", summary.Attempted))
			return summary, err
		}
		lines, err := d.opts.Queue.Load()
		if err != nil {
			return summary, failure.Persist(err)
		}
		if len(lines) == 0 {
			logger.Info("download queue empty",
				logging.Int("attempted", summary.Attempted),
				logging.Int("failed", len(summary.Failed)),
			)
			return summary, nil
		}

		entry := queue.Pending{Link: lines[0]}
		urlCtx := services.WithURL(ctx, entry.URL())
		started := d.opts.Now()
		title, fetchErr := d.fetch(urlCtx, entry.URL())
		finished := d.opts.Now()

		summary.Attempted++
		removed, err := d.opts.Queue.RemoveFirst(entry.URL())
		if err != nil {
			return summary, failure.Persist(err)
		}
		if !removed {
			logger.Warn("queue entry vanished before removal",
				logging.String(logging.FieldURL, entry.URL()),
			)
		}

		attempt := history.Attempt{
			RunID:      d.opts.RunID,
			URL:        entry.URL(),
			Title:      title,
			Outcome:    history.OutcomeSucceeded,
			StartedAt:  started,
			FinishedAt: finished,
		}
		if fetchErr != nil {
			failed := queue.Fail(entry, fetchErr.Error())
			summary.Failed = append(summary.Failed, failed)
			fmt.Fprintf(d.opts.Stderr, "Failed to download `%s`: %v\n", entry.URL(), fetchErr)
			logger.Info("download failed",
				logging.String(logging.FieldURL, entry.URL()),
				logging.Error(fetchErr),
			)
			attempt.Outcome = history.OutcomeFailed
			attempt.Error = failed.Reason
		} else {
			summary.Succeeded = append(summary.Succeeded, entry.URL())
			logger.Info("download finished",
				logging.String(logging.FieldURL, entry.URL()),
				logging.String(logging.FieldTitle, title),
				logging.Duration("elapsed", finished.Sub(started)),
			)
		}
		d.record(context.WithoutCancel(urlCtx), attempt)
	}
}

func (d *Driver) fetch(ctx context.Context, url string) (string, error) {
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("download started", logging.String("output_dir", d.opts.OutputDir))

	view := newProgressView(d.opts.Stdout, d.opts.TitleWidth, d.opts.Interactive, logger)
	err := d.opts.Fetcher.Download(ctx, url, d.opts.OutputDir, view.handle)
	view.finish()
	return view.title, err
}

func (d *Driver) record(ctx context.Context, attempt history.Attempt) {
	if d.opts.History == nil {
		return
	}
	if _, err := d.opts.History.Record(ctx, attempt); err != nil {
		logging.WithContext(ctx, d.logger).Warn("failed to record attempt", logging.Error(err))
	}
}
