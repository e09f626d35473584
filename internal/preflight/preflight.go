package preflight

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"nasutil/internal/failure"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Runner bundles the checks required before downloads start.
type Runner struct {
	Binary    string
	OutputDir string
	QueueFile string
	// Version, when set, is called after the binary lookup succeeds and its
	// result is reported in the binary check detail.
	Version func(ctx context.Context) (string, error)
}

// RunAll executes every configured check in order.
func (r Runner) RunAll(ctx context.Context) []Result {
	binary := CheckBinary("yt-dlp", r.Binary)
	if binary.Passed && r.Version != nil {
		version, err := r.Version(ctx)
		switch {
		case err != nil:
			binary = Result{Name: binary.Name, Detail: fmt.Sprintf("%s (error: version probe: %v)", binary.Detail, err)}
		case version != "":
			binary.Detail = fmt.Sprintf("%s (version %s)", binary.Detail, version)
		}
	}

	results := []Result{
		binary,
		EnsureDirectory("Output directory", r.OutputDir),
	}
	if strings.TrimSpace(r.QueueFile) != "" {
		results = append(results, EnsureDirectory("Queue directory", filepath.Dir(r.QueueFile)))
	}
	return results
}

// Check runs all checks and returns an error describing every failure.
func (r Runner) Check(ctx context.Context) error {
	return Failed(r.RunAll(ctx))
}

// Failed collapses failed results into one configuration error, or nil.
func Failed(results []Result) error {
	var problems []string
	for _, result := range results {
		if !result.Passed {
			problems = append(problems, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return failure.Wrap(failure.ErrConfig, "preflight", strings.Join(problems, "; "), nil)
}
