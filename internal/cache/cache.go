// Package cache remembers formatting results keyed by input content, the
// effective options and the formatter version, so unchanged files are not
// formatted twice.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion is bumped whenever Entry changes shape.
const schemaVersion uint16 = 1

type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Key derives the cache key of one formatting request.
func Key(content []byte, fingerprint, version string) Digest {
	h := sha256.New()
	sum := sha256.Sum256(content)
	h.Write(sum[:])
	fmt.Fprintf(h, "\x00%s\x00%s", fingerprint, version)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Entry is the stored outcome of formatting one input.
type Entry struct {
	Schema      uint16
	Output      []byte
	Rewrites    int
	Ambiguities int
	Groups      int
	Verified    bool // output passed the idempotence check
}

// Cache is a two-level store: an in-process map in front of msgpack files
// under dir. Safe for concurrent use. A nil *Cache is a valid, empty cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
	mem map[Digest]Entry
}

// Open returns the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir returns a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, mem: make(map[Digest]Entry)}, nil
}

// Dir reports where entries are stored.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "fmt", hexKey[:2], hexKey+".mp")
}

// Put stores e under key.
func (c *Cache) Put(key Digest, e Entry) error {
	if c == nil {
		return nil
	}
	e.Schema = schemaVersion
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[key] = e

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&e); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	committed = true
	return nil
}

// Get looks key up. Entries written by another schema count as misses.
func (c *Cache) Get(key Digest) (Entry, bool, error) {
	if c == nil {
		return Entry{}, false, nil
	}
	c.mu.RLock()
	e, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		return e, true, nil
	}

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return Entry{}, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if e.Schema != schemaVersion {
		return Entry{}, false, nil
	}
	c.mu.Lock()
	c.mem[key] = e
	c.mu.Unlock()
	return e, true, nil
}

// DropAll removes every stored entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mem = make(map[Digest]Entry)
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
