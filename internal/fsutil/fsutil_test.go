package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solfmt/internal/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("overwrites and keeps mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "Token.sol")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "A.sol")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "A.sol", entries[0].Name())
	})

	t.Run("honours cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "B.sol"), []byte("x"), 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "C.sol")
	ctx := context.Background()

	changed, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCreateBackupKeepsFirstCopy(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Vault.sol")
	ctx := context.Background()
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	created, err := fsutil.CreateBackup(ctx, path)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("v2"), 0o644))
	created, err = fsutil.CreateBackup(ctx, path)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	restored, err := fsutil.RestoreBackup(ctx, path)
	require.NoError(t, err)
	assert.True(t, restored)
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(dir, "missing.sol"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(context.Background(), dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)
}
