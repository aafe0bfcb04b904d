package explorer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxDepth is the depth bound used by the build and clean commands.
const DefaultMaxDepth = 10

// Visit describes a directory entry handed to a Predicate.
type Visit struct {
	Path  string // Path joined from the walk root (e.g., "src/app/main.py")
	Name  string // Base name of the entry
	Ext   string // Lowercased extension including the dot; empty for directories
	IsDir bool   // True when the entry (or its symlink target) is a directory
}

// Predicate decides whether a visited entry belongs in the result.
type Predicate func(v Visit) bool

// Explore lists root recursively and returns the paths of every entry that
// match accepts, in directory-listing order. The root's immediate children
// are at depth 0 and a directory's entries are listed only while its depth is
// below maxDepth, so a maxDepth of 0 returns nothing.
//
// A root that does not exist or is not a directory yields an empty result.
// Any other failure to stat or list a directory aborts the whole walk.
func Explore(root string, match Predicate, maxDepth int) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("exploring %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	var results []string
	if err := explore(root, match, 0, maxDepth, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func explore(dir string, match Predicate, depth, maxDepth int, results *[]string) error {
	if depth >= maxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		isDir, err := entryIsDir(path, entry)
		if err != nil {
			return err
		}

		v := Visit{
			Path:  path,
			Name:  entry.Name(),
			IsDir: isDir,
		}
		if !isDir {
			v.Ext = strings.ToLower(filepath.Ext(entry.Name()))
		}

		if match == nil || match(v) {
			*results = append(*results, path)
		}

		if isDir {
			if err := explore(path, match, depth+1, maxDepth, results); err != nil {
				return err
			}
		}
	}

	return nil
}

// entryIsDir reports whether entry is a directory, following symlinks.
// A dangling symlink is treated as a plain file.
func entryIsDir(path string, entry fs.DirEntry) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("resolving symlink %s: %w", path, err)
	}
	return info.IsDir(), nil
}
