package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is appended to the path of a sidecar backup.
const BackupSuffix = ".solfmt.bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies path to its sidecar before the first overwrite. An
// existing backup is kept, so repeated runs never replace the pristine
// copy. It reports whether a backup was written.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}
	backupPath := BackupPath(path)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, mode, err := ReadFile(ctx, path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}
	if err := WriteAtomic(ctx, backupPath, content, mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup puts the sidecar content back over path.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	content, mode, err := ReadFile(ctx, BackupPath(path))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}
	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}
