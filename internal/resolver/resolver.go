package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Cyclip/pyproj/internal/explorer"
	"github.com/Cyclip/pyproj/internal/imports"
	"github.com/Cyclip/pyproj/internal/manifest"
	"github.com/Cyclip/pyproj/internal/pkgindex"
)

// SourceExt is the extension of files scanned for imports.
const SourceExt = ".py"

// ErrNoSourceDir is returned when the source directory to scan does not exist.
var ErrNoSourceDir = errors.New("source directory not found")

// Resolver turns source files into manifest entries.
type Resolver struct {
	// Provider supplies installed versions. Nil is treated as an empty index.
	Provider pkgindex.Provider
	// Logger receives warnings for unresolved modules. Nil uses log.Default().
	Logger *log.Logger
	// Root is the source directory the files were found under. When set,
	// package directories below it count as local modules.
	Root string
}

// Sources lists every source file under root up to maxDepth levels deep.
func Sources(root string, maxDepth int) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSourceDir, root)
		}
		return nil, fmt.Errorf("checking %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoSourceDir, root)
	}
	return explorer.Explore(root, explorer.HasExt(SourceExt), maxDepth)
}

// LocalModules returns the names that refer to modules inside the project:
// the basename of every file without its extension and, when root is set,
// every directory between root and a file.
func LocalModules(files []string, root string) map[string]bool {
	local := make(map[string]bool, len(files))
	for _, file := range files {
		base := filepath.Base(file)
		local[strings.TrimSuffix(base, filepath.Ext(base))] = true

		if root == "" {
			continue
		}
		rel, err := filepath.Rel(root, filepath.Dir(file))
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		for _, dir := range strings.Split(rel, string(filepath.Separator)) {
			local[dir] = true
		}
	}
	return local
}

// Dependencies returns the distribution names imported by files, excluding
// local and builtin modules, with aliases applied. Names appear once, in
// order of first appearance.
func (r *Resolver) Dependencies(ctx context.Context, files []string) ([]string, error) {
	local := LocalModules(files, r.Root)
	logger := r.logger()

	seen := make(map[string]bool)
	var deps []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		modules, err := scanFile(file)
		if err != nil {
			return nil, err
		}
		for _, name := range modules {
			if name == "" || local[name] || imports.IsBuiltin(name) {
				continue
			}
			pkg := imports.ResolveAlias(name)
			if seen[pkg] {
				continue
			}
			seen[pkg] = true
			logger.Debug("found dependency", "module", name, "package", pkg, "file", file)
			deps = append(deps, pkg)
		}
	}
	return deps, nil
}

// Build resolves the dependencies of files against the installed index. A
// dependency without an installed version is reported as a warning and left
// out. Only a source read failure is an error; an unavailable index degrades
// to an empty one.
func (r *Resolver) Build(ctx context.Context, files []string) (manifest.Manifest, error) {
	deps, err := r.Dependencies(ctx, files)
	if err != nil {
		return nil, err
	}

	logger := r.logger()
	index := r.installed(ctx)

	var m manifest.Manifest
	pinned := make(map[string]bool, len(deps))
	for _, dep := range deps {
		pkg, version, ok := index.Lookup(dep)
		if !ok {
			logger.Warn("no installed version found, skipping", "package", dep)
			continue
		}
		if pinned[pkg] {
			continue
		}
		pinned[pkg] = true
		m = append(m, manifest.Entry{Name: pkg, Version: version})
	}
	return m.Sorted(), nil
}

func (r *Resolver) installed(ctx context.Context) pkgindex.Index {
	if r.Provider == nil {
		return pkgindex.Index{}
	}
	index, err := r.Provider.Installed(ctx)
	if err != nil {
		r.logger().Warn("installed-package index unavailable", "err", err)
		return pkgindex.Index{}
	}
	r.logger().Debug("loaded installed-package index", "packages", len(index))
	return index
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func scanFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	modules, err := imports.Scan(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return modules, nil
}
