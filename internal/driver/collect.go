package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"solfmt/internal/fsutil"
)

// SourceExt is the extension picked up when walking directories.
const SourceExt = ".sol"

// Excluder decides whether a path found under root is skipped.
type Excluder interface {
	Excluded(root, path string) bool
}

// CollectSourceFiles expands paths into a sorted, duplicate-free list of
// files. Directories are walked recursively for *.sol files; hidden
// directories and paths matched by ex are skipped. A path named
// explicitly is always kept, whatever its extension.
func CollectSourceFiles(ctx context.Context, paths []string, ex Excluder) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", fsutil.ErrNotFound, p)
			}
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}

		root := p
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && (strings.HasPrefix(d.Name(), ".") || excluded(ex, root, path)) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == SourceExt && !excluded(ex, root, path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func excluded(ex Excluder, root, path string) bool {
	return ex != nil && ex.Excluded(root, path)
}
