package diagfmt

import (
	"os"
	"path/filepath"
	"strings"
)

func displayPath(path string, mode PathMode) string {
	if path == "" || strings.HasPrefix(path, "<") {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative, PathModeAuto:
		wd, err := os.Getwd()
		if err != nil {
			return path
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		rel, err := filepath.Rel(wd, abs)
		if err != nil {
			return path
		}
		if mode == PathModeAuto && strings.HasPrefix(rel, "..") {
			return path
		}
		return filepath.ToSlash(rel)
	}
	return path
}
