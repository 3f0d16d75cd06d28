package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Excluder matches paths against the exclude patterns. `**` crosses
// directories, `*` does not.
type Excluder struct {
	globs []glob.Glob
}

// NewExcluder compiles patterns.
func NewExcluder(patterns []string) (*Excluder, error) {
	e := &Excluder{globs: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, p, err)
		}
		e.globs = append(e.globs, g)
	}
	return e, nil
}

// Excluded reports whether path, taken relative to root, matches a
// pattern. A pattern also matches any file under a matching directory.
func (e *Excluder) Excluded(root, path string) bool {
	if e == nil || len(e.globs) == 0 {
		return false
	}
	rel := path
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	rel = filepath.ToSlash(filepath.Clean(rel))
	for _, g := range e.globs {
		if g.Match(rel) {
			return true
		}
		for dir := rel; ; {
			i := strings.LastIndexByte(dir, '/')
			if i < 0 {
				break
			}
			dir = dir[:i]
			if g.Match(dir) {
				return true
			}
		}
	}
	return false
}
