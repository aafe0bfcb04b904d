package pkgindex

import (
	"regexp"
	"strings"
)

// Index maps installed distribution names to their version strings.
type Index map[string]string

// Parse reads the output of "pip freeze". Each line is split on its first
// "==": the left side is the name and the right side, up to a second "==" if
// one exists, is the version. Lines without "==" (editable installs, direct
// URL references, blank lines) are skipped.
func Parse(raw string) Index {
	idx := make(Index)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		name, rest, ok := strings.Cut(line, "==")
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "==")
		idx[name] = version
	}
	return idx
}

// Lookup returns the version installed under name. An exact match wins;
// otherwise names are compared in their normalised form, so "flask" finds an
// entry recorded as "Flask". The returned name is the one stored in the index.
func (idx Index) Lookup(name string) (pkg, version string, ok bool) {
	if v, found := idx[name]; found {
		return name, v, true
	}
	want := Normalize(name)
	for k, v := range idx {
		if Normalize(k) != want {
			continue
		}
		// Keep the result stable if several spellings are present.
		if !ok || k < pkg {
			pkg, version, ok = k, v, true
		}
	}
	return pkg, version, ok
}

var separatorRun = regexp.MustCompile(`[-_.]+`)

// Normalize returns the canonical form of a distribution name: lowercased,
// with runs of "-", "_" and "." collapsed to a single "-".
func Normalize(name string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
