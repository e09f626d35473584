// Package fileutil holds the durable-write primitives shared by file-backed stores.
package fileutil

import (
	"fmt"
	"os"
)

// WriteFileSynced writes data to path, truncating any previous content, and
// fsyncs the file before closing it.
func WriteFileSynced(path string, data []byte, mode os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReplaceFile makes data the content of path via a synced write to staging
// followed by a rename, so path only ever holds the old or the new bytes.
// A leftover staging file from an interrupted call is overwritten.
func ReplaceFile(path, staging string, data []byte, mode os.FileMode) error {
	if err := WriteFileSynced(staging, data, mode); err != nil {
		return fmt.Errorf("write staging file: %w", err)
	}
	if err := os.Rename(staging, path); err != nil {
		return fmt.Errorf("rename staging file: %w", err)
	}
	return nil
}

// SyncDir fsyncs a directory so a completed rename survives power loss.
func SyncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", dir, err)
	}
	return nil
}
