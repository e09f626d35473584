package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileSyncedTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := WriteFileSynced(path, []byte("long content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileSynced(path, []byte("short"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "short" {
		t.Fatalf("expected truncated content, got %q", got)
	}
}

func TestReplaceFileOverwritesStaleStaging(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queue.txt")
	staging := path + ".bak"
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(staging, []byte("stale partial"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ReplaceFile(path, staging, []byte("new\n"), 0o644); err != nil {
		t.Fatalf("ReplaceFile returned error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new\n" {
		t.Fatalf("unexpected content %q", got)
	}
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Fatalf("expected staging file to be consumed, got %v", err)
	}
}

func TestReplaceFileFailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queue.txt")
	if err := os.WriteFile(path, []byte("keep\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	staging := filepath.Join(dir, "missing-dir", "queue.txt.bak")
	if err := ReplaceFile(path, staging, []byte("new\n"), 0o644); err == nil {
		t.Fatal("expected error when staging cannot be written")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "keep\n" {
		t.Fatalf("original modified: %q", got)
	}
}

func TestSyncDir(t *testing.T) {
	if err := SyncDir(t.TempDir()); err != nil {
		t.Fatalf("SyncDir returned error: %v", err)
	}
	if err := SyncDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing dir")
	}
}
