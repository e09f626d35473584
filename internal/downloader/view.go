package downloader

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"nasutil/internal/logging"
	"nasutil/internal/progress"
	"nasutil/internal/services/ytdlp"
)

const clearWidth = 80

var clearLine = "\r" + strings.Repeat(" ", clearWidth) + "\r"

// progressView turns fetcher events into terminal redraws or sampled logs.
type progressView struct {
	out         io.Writer
	width       int
	interactive bool
	logger      *slog.Logger
	sampler     *logging.ProgressSampler
	title       string
	drawn       bool
}

func newProgressView(out io.Writer, width int, interactive bool, logger *slog.Logger) *progressView {
	return &progressView{
		out:         out,
		width:       width,
		interactive: interactive,
		logger:      logger,
		sampler:     logging.NewProgressSampler(10),
	}
}

func (v *progressView) handle(event ytdlp.Event) {
	switch event.Kind {
	case ytdlp.EventDestination:
		v.title = event.Title
		v.sampler.Reset()
		v.logger.Debug("download destination", logging.String(logging.FieldTitle, v.title))
	case ytdlp.EventProgress:
		if v.interactive {
			fmt.Fprint(v.out, clearLine+progress.Line(shortTitle(v.title, v.width), event.Progress))
			v.drawn = true
			return
		}
		if v.sampler.ShouldLog(event.Progress.Percent, v.title) {
			v.logger.Debug("download progress",
				logging.String(logging.FieldTitle, v.title),
				logging.Float64("progress_percent", event.Progress.Percent),
				logging.String("progress_eta", event.Progress.ETA),
			)
		}
	}
}

func (v *progressView) finish() {
	if v.drawn {
		fmt.Fprintln(v.out)
		v.drawn = false
	}
}

// shortTitle truncates title to at most width runes.
func shortTitle(title string, width int) string {
	if width <= 0 {
		return title
	}
	runes := []rune(title)
	if len(runes) <= width {
		return title
	}
	return string(runes[:width])
}
