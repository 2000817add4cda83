package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic streams write into a temporary file next to path and
// renames it over path once everything has been flushed. Readers see
// either the old file or the complete new one, never a truncated file.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("WriteFileAtomic: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("WriteFileAtomic: create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("WriteFileAtomic: write: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("WriteFileAtomic: sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("WriteFileAtomic: close: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("WriteFileAtomic: chmod: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("WriteFileAtomic: rename: %w", err)
	}
	return nil
}
