package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"nasutil/internal/failure"
)

// Store persists download attempts backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	timeLayout              = time.RFC3339Nano
)

// NewRunID returns a fresh identifier grouping the attempts of one download run.
func NewRunID() string {
	return uuid.NewString()
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, failure.Wrap(failure.ErrConfig, "open history", "database path required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, failure.Wrap(failure.ErrIO, "open history", "create directory", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, failure.Wrap(failure.ErrIO, "open history", "open sqlite db", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, failure.Wrap(failure.ErrIO, "open history", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, failure.Wrap(failure.ErrIO, "open history", "", err)
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts attempt and returns it with its assigned ID.
func (s *Store) Record(ctx context.Context, attempt Attempt) (Attempt, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(attempt.URL) == "" {
		return Attempt{}, failure.Wrap(failure.ErrValidation, "record attempt", "url required", nil)
	}
	switch attempt.Outcome {
	case OutcomeSucceeded, OutcomeFailed:
	default:
		return Attempt{}, failure.Wrap(failure.ErrValidation, "record attempt", fmt.Sprintf("unknown outcome %q", attempt.Outcome), nil)
	}
	if attempt.RunID == "" {
		attempt.RunID = NewRunID()
	}
	now := time.Now().UTC()
	if attempt.StartedAt.IsZero() {
		attempt.StartedAt = now
	}
	if attempt.FinishedAt.IsZero() {
		attempt.FinishedAt = now
	}

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`INSERT INTO attempts (run_id, url, title, outcome, error_message, started_at, finished_at)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			attempt.RunID,
			attempt.URL,
			attempt.Title,
			string(attempt.Outcome),
			attempt.Error,
			attempt.StartedAt.UTC().Format(timeLayout),
			attempt.FinishedAt.UTC().Format(timeLayout),
		)
		return execErr
	})
	if err != nil {
		return Attempt{}, failure.Wrap(failure.ErrIO, "record attempt", attempt.URL, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Attempt{}, failure.Wrap(failure.ErrIO, "record attempt", "last insert id", err)
	}
	attempt.ID = id
	return attempt, nil
}

// ListOptions filters List results.
type ListOptions struct {
	Limit      int
	FailedOnly bool
}

// List returns the most recent attempts first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Attempt, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, run_id, url, title, outcome, error_message, started_at, finished_at FROM attempts`
	var args []any
	if opts.FailedOnly {
		query += ` WHERE outcome = ?`
		args = append(args, string(OutcomeFailed))
	}
	query += ` ORDER BY id DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, failure.Wrap(failure.ErrIO, "list attempts", "", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, failure.Wrap(failure.ErrDecode, "list attempts", "", err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, failure.Wrap(failure.ErrIO, "list attempts", "", err)
	}
	return attempts, nil
}

// Stats counts attempts by outcome.
func (s *Store) Stats(ctx context.Context) (map[Outcome]int, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM attempts GROUP BY outcome`)
	if err != nil {
		return nil, failure.Wrap(failure.ErrIO, "attempt stats", "", err)
	}
	defer rows.Close()

	stats := make(map[Outcome]int)
	for rows.Next() {
		var (
			outcome string
			count   int
		)
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, failure.Wrap(failure.ErrDecode, "attempt stats", "", err)
		}
		stats[Outcome(outcome)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, failure.Wrap(failure.ErrIO, "attempt stats", "", err)
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row scanner) (Attempt, error) {
	var (
		attempt    Attempt
		outcome    string
		startedAt  string
		finishedAt string
	)
	if err := row.Scan(
		&attempt.ID,
		&attempt.RunID,
		&attempt.URL,
		&attempt.Title,
		&outcome,
		&attempt.Error,
		&startedAt,
		&finishedAt,
	); err != nil {
		return Attempt{}, err
	}
	attempt.Outcome = Outcome(outcome)
	var err error
	if attempt.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return Attempt{}, fmt.Errorf("parse started_at: %w", err)
	}
	if attempt.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
		return Attempt{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return attempt, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
