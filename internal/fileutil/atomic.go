// Package fileutil writes generated files without leaving partial output.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned when a file is already present and overwriting was
// not requested
var ErrExists = errors.New("file already exists")

// Options controls WriteFileAtomic
type Options struct {
	Perm      os.FileMode
	Overwrite bool
}

// WriteFileAtomic writes data next to filename and renames it into place, so
// readers see either the old file or the complete new one.
func WriteFileAtomic(filename string, data []byte, opts Options) (err error) {
	if !opts.Overwrite {
		if _, statErr := os.Stat(filename); statErr == nil {
			return fmt.Errorf("%w: %s", ErrExists, filename)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", filename, statErr)
		}
	}
	perm := opts.Perm
	if perm == 0 {
		perm = 0o644
	}

	// same directory keeps the rename on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
