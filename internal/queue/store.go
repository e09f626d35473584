package queue

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"nasutil/internal/failure"
	"nasutil/internal/fileutil"
)

const (
	stagingSuffix = ".bak"
	fileMode      = 0o644
)

// Store reads and mutates a queue file.
type Store struct {
	path    string
	staging string
}

// New binds a store to the queue file at path. Nothing is touched on disk
// until the first mutation.
func New(path string) *Store {
	return &Store{path: path, staging: path + stagingSuffix}
}

// Path returns the canonical queue file location.
func (s *Store) Path() string { return s.path }

// StagingPath returns the sibling file used for atomic replacement.
func (s *Store) StagingPath() string { return s.staging }

// Load returns every non-blank line of the queue file in order. A missing
// file is an empty queue.
func (s *Store) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, failure.Wrap(failure.ErrIO, "read queue", s.path, err)
	}
	return parseLines(data), nil
}

// Entries loads the queue as Pending entries.
func (s *Store) Entries() ([]Entry, error) {
	urls, err := s.Load()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(urls))
	for _, url := range urls {
		entries = append(entries, Pending{Link: url})
	}
	return entries, nil
}

// Append normalizes raw and adds it to the end of the queue. It returns the
// stored URL and whether it was newly added; a URL already queued is left
// in place and reported with added=false.
func (s *Store) Append(raw string) (url string, added bool, err error) {
	url = Normalize(raw)
	if url == "" {
		return "", false, failure.Wrap(failure.ErrValidation, "add url", "url is empty", nil)
	}

	existing, err := s.Load()
	if err != nil {
		return url, false, err
	}
	if slices.Contains(existing, url) {
		return url, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return url, false, failure.Wrap(failure.ErrIO, "create queue directory", filepath.Dir(s.path), err)
	}
	file, err := os.OpenFile(s.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, fileMode)
	if err != nil {
		return url, false, failure.Wrap(failure.ErrIO, "open queue", s.path, err)
	}
	defer file.Close()

	record := url + "\n"
	needsNewline, err := missingTrailingNewline(file)
	if err != nil {
		return url, false, failure.Wrap(failure.ErrIO, "inspect queue", s.path, err)
	}
	if needsNewline {
		record = "\n" + record
	}
	if _, err := file.WriteString(record); err != nil {
		return url, false, failure.Wrap(failure.ErrIO, "append queue", s.path, err)
	}
	if err := file.Sync(); err != nil {
		return url, false, failure.Wrap(failure.ErrIO, "sync queue", s.path, err)
	}
	if err := file.Close(); err != nil {
		return url, false, failure.Wrap(failure.ErrIO, "close queue", s.path, err)
	}
	return url, true, nil
}

// RemoveFirst drops the first line equal to url. When no line matches the
// file is left untouched and false is returned.
func (s *Store) RemoveFirst(url string) (bool, error) {
	lines, err := s.Load()
	if err != nil {
		return false, err
	}
	idx := slices.Index(lines, url)
	if idx < 0 {
		return false, nil
	}
	remaining := slices.Delete(slices.Clone(lines), idx, idx+1)
	if err := s.SaveAtomic(remaining); err != nil {
		return false, err
	}
	return true, nil
}

// Clear replaces the queue with an empty file. The file exists afterward.
func (s *Store) Clear() error {
	return s.SaveAtomic(nil)
}

// SaveAtomic replaces the queue with lines. Content is written and synced
// to the staging file first, then renamed over the canonical path; readers
// observe either the old queue or the new one, never a partial write.
func (s *Store) SaveAtomic(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return failure.Wrap(failure.ErrIO, "create queue directory", filepath.Dir(s.path), err)
	}
	if err := fileutil.ReplaceFile(s.path, s.staging, encodeLines(lines), fileMode); err != nil {
		return failure.Wrap(failure.ErrIO, "replace queue", s.path, err)
	}
	// Best effort: persist the rename itself.
	_ = fileutil.SyncDir(filepath.Dir(s.path))
	return nil
}

func parseLines(data []byte) []string {
	raw := strings.Split(string(data), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func encodeLines(lines []string) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func missingTrailingNewline(file *os.File) (bool, error) {
	info, err := file.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}
