package explorer

import "strings"

// HasExt matches files whose extension is one of exts. Extensions are
// case-insensitive and may be given with or without the leading dot.
func HasExt(exts ...string) Predicate {
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}
	return func(v Visit) bool {
		return !v.IsDir && allowed[v.Ext]
	}
}

// NameIn matches any entry, file or directory, whose base name is in names.
func NameIn(names ...string) Predicate {
	set := toSet(names)
	return func(v Visit) bool {
		return set[v.Name]
	}
}

// DirNamed matches directories whose base name is in names.
func DirNamed(names ...string) Predicate {
	set := toSet(names)
	return func(v Visit) bool {
		return v.IsDir && set[v.Name]
	}
}

// Any matches when at least one of preds matches.
func Any(preds ...Predicate) Predicate {
	return func(v Visit) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
