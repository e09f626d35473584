package history

import "time"

// Outcome describes how a download attempt ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Attempt is one row of the attempt log.
type Attempt struct {
	ID         int64
	RunID      string
	URL        string
	Title      string
	Outcome    Outcome
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration reports how long the attempt ran.
func (a Attempt) Duration() time.Duration {
	if a.StartedAt.IsZero() || a.FinishedAt.Before(a.StartedAt) {
		return 0
	}
	return a.FinishedAt.Sub(a.StartedAt)
}

// Failed reports whether the attempt ended in failure.
func (a Attempt) Failed() bool {
	return a.Outcome == OutcomeFailed
}
