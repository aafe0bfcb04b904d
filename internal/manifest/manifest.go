package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// DefaultFileName is the manifest written by "pyproj build".
const DefaultFileName = "requirements.txt"

// Entry pins one distribution to its installed version.
type Entry struct {
	Name    string
	Version string
}

// String renders the entry as a requirements line without terminator.
func (e Entry) String() string {
	return e.Name + "==" + e.Version
}

// Manifest is a set of pinned dependencies.
type Manifest []Entry

// Sorted returns a copy of m ordered by name.
func (m Manifest) Sorted() Manifest {
	out := make(Manifest, len(m))
	copy(out, m)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the entry names in manifest order.
func (m Manifest) Names() []string {
	names := make([]string, len(m))
	for i, e := range m {
		names[i] = e.Name
	}
	return names
}

// Render returns the file content: one line per entry, sorted by name, each
// ending in "\n". An empty manifest renders as the empty string.
func (m Manifest) Render() string {
	var b strings.Builder
	for _, e := range m.Sorted() {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Write replaces the file at path with the rendered manifest.
func (m Manifest) Write(path string) error {
	if err := os.WriteFile(path, []byte(m.Render()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read parses an existing requirements file. Only pinned "name==version"
// lines are returned; comments, options and unpinned requirements are
// skipped. A missing file yields an empty manifest.
func Read(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var m Manifest
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '-' {
			continue
		}
		name, version, ok := strings.Cut(line, "==")
		if !ok {
			continue
		}
		m = append(m, Entry{Name: strings.TrimSpace(name), Version: strings.TrimSpace(version)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// Change summarises how a new manifest differs from a previous one.
type Change struct {
	Added   []string
	Removed []string
	Updated []string // name whose version changed
}

// Empty reports whether nothing changed.
func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Updated) == 0
}

// Diff compares next against prev by name. Result slices are sorted.
func Diff(prev, next Manifest) Change {
	before := make(map[string]string, len(prev))
	for _, e := range prev {
		before[e.Name] = e.Version
	}
	after := make(map[string]string, len(next))
	for _, e := range next {
		after[e.Name] = e.Version
	}

	var c Change
	for name, v := range after {
		old, ok := before[name]
		switch {
		case !ok:
			c.Added = append(c.Added, name)
		case old != v:
			c.Updated = append(c.Updated, name)
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			c.Removed = append(c.Removed, name)
		}
	}
	sort.Strings(c.Added)
	sort.Strings(c.Removed)
	sort.Strings(c.Updated)
	return c
}
