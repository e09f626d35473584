package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"nasutil/internal/failure"
	"nasutil/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	runID := history.NewRunID()
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, history.Attempt{
		RunID:      runID,
		URL:        "https://youtu.be/one",
		Title:      "Uploader---One",
		Outcome:    history.OutcomeFailed,
		Error:      "exit status 1",
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if _, err := store.Record(ctx, history.Attempt{
		RunID:   runID,
		URL:     "https://youtu.be/two",
		Outcome: history.OutcomeSucceeded,
	}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	attempts, err := store.List(ctx, history.ListOptions{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].URL != "https://youtu.be/two" || attempts[1].URL != "https://youtu.be/one" {
		t.Fatalf("expected newest first, got %q then %q", attempts[0].URL, attempts[1].URL)
	}
	got := attempts[1]
	if got.RunID != runID || got.Title != "Uploader---One" || !got.Failed() || got.Error != "exit status 1" {
		t.Fatalf("unexpected attempt: %+v", got)
	}
	if !got.StartedAt.Equal(start) || got.Duration() != 3*time.Second {
		t.Fatalf("unexpected timestamps: %+v", got)
	}
	if attempts[0].StartedAt.IsZero() || attempts[0].FinishedAt.IsZero() {
		t.Fatalf("expected default timestamps, got %+v", attempts[0])
	}
}

func TestListFiltersFailedAndLimits(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for i, outcome := range []history.Outcome{
		history.OutcomeFailed,
		history.OutcomeSucceeded,
		history.OutcomeFailed,
		history.OutcomeFailed,
	} {
		if _, err := store.Record(ctx, history.Attempt{
			URL:     "https://youtu.be/" + string(rune('a'+i)),
			Outcome: outcome,
		}); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	failed, err := store.List(ctx, history.ListOptions{FailedOnly: true, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed attempts, got %d", len(failed))
	}
	for _, attempt := range failed {
		if !attempt.Failed() {
			t.Fatalf("expected only failures, got %+v", attempt)
		}
	}
	if failed[0].URL != "https://youtu.be/d" {
		t.Fatalf("expected latest failure first, got %q", failed[0].URL)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats[history.OutcomeFailed] != 3 || stats[history.OutcomeSucceeded] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestRecordValidatesInput(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	if _, err := store.Record(ctx, history.Attempt{Outcome: history.OutcomeFailed}); !errors.Is(err, failure.ErrValidation) {
		t.Fatalf("expected validation error for empty url, got %v", err)
	}
	if _, err := store.Record(ctx, history.Attempt{URL: "u", Outcome: "maybe"}); !errors.Is(err, failure.ErrValidation) {
		t.Fatalf("expected validation error for bad outcome, got %v", err)
	}
}

func TestReopenKeepsAttempts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Attempt{URL: "u", Outcome: history.OutcomeSucceeded}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()
	attempts, err := reopened.List(context.Background(), history.ListOptions{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected persisted attempt, got %d", len(attempts))
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := history.Open("  "); !errors.Is(err, failure.ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}
