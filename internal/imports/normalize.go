package imports

import "strings"

// Normalize returns the top-level module of a dotted reference:
// "os.path" becomes "os". Relative references such as "." or ".models"
// normalise to the empty string.
func Normalize(ref string) string {
	if i := strings.IndexByte(ref, '.'); i >= 0 {
		return ref[:i]
	}
	return ref
}

// ResolveAlias maps an import-time module name to the name it is published
// under. Names without an entry are returned unchanged.
func ResolveAlias(name string) string {
	if pkg, ok := aliases[name]; ok {
		return pkg
	}
	return name
}

// IsBuiltin reports whether name is part of the standard distribution.
func IsBuiltin(name string) bool {
	return builtins[name]
}

// Aliases returns a copy of the alias table.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}
