package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDependsOnEveryInput(t *testing.T) {
	base := Key([]byte("contract A {}"), "w=100", "v1")
	assert.Equal(t, base, Key([]byte("contract A {}"), "w=100", "v1"))
	assert.NotEqual(t, base, Key([]byte("contract B {}"), "w=100", "v1"))
	assert.NotEqual(t, base, Key([]byte("contract A {}"), "w=80", "v1"))
	assert.NotEqual(t, base, Key([]byte("contract A {}"), "w=100", "v2"))
}

func TestPutGetRoundTripThroughDisk(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenDir(dir)
	require.NoError(t, err)

	key := Key([]byte("x"), "", "")
	require.NoError(t, c.Put(key, Entry{Output: []byte("y\n"), Rewrites: 2}))

	fresh, err := OpenDir(dir)
	require.NoError(t, err)
	e, ok, err := fresh.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("y\n"), e.Output)
	assert.Equal(t, 2, e.Rewrites)
	assert.Equal(t, schemaVersion, e.Schema)
}

func TestGetMiss(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	require.NoError(t, err)
	_, ok, err := c.Get(Key([]byte("nothing"), "", ""))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetRejectsCorruptEntry(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	require.NoError(t, err)
	key := Key([]byte("x"), "", "")
	p := c.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte{0xc1}, 0o644))

	_, ok, err := c.Get(key)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNilCacheIsEmpty(t *testing.T) {
	var c *Cache
	require.NoError(t, c.Put(Digest{}, Entry{}))
	_, ok, err := c.Get(Digest{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.DropAll())
}

func TestDropAll(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenDir(dir)
	require.NoError(t, err)
	key := Key([]byte("x"), "", "")
	require.NoError(t, c.Put(key, Entry{Output: []byte("x\n")}))

	require.NoError(t, c.DropAll())
	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.DirExists(t, dir)
}

func TestOpenUsesXDGCacheHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	c, err := Open("solfmt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "solfmt"), c.Dir())
}
