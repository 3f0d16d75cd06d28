// Package fsutil holds the file operations of the write-back path.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used for files that did not exist before.
const DefaultFileMode os.FileMode = 0o644

var (
	// ErrNotFound is returned when a path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrIsDirectory is returned when a file was expected.
	ErrIsDirectory = errors.New("is a directory")
)

// ReadFile reads path and returns its content and permission bits.
func ReadFile(ctx context.Context, path string) ([]byte, os.FileMode, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("read file: %w", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, 0, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	return content, stat.Mode().Perm(), nil
}

// WriteAtomic writes content to a temp file in the same directory, syncs
// it and renames it over path. A reader never sees a partial file.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	success = true
	return nil
}

// WriteAtomicIfChanged skips the write when path already holds content.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	// #nosec G304 -- path is provided by the caller
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !os.IsNotExist(err):
		return false, fmt.Errorf("read existing: %w", err)
	}
	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
