// Package explorer walks a project tree to a fixed depth and collects the
// paths accepted by a caller-supplied predicate. It powers both "pyproj build"
// (finding source files) and "pyproj clean" (finding cache directories) and
// knows nothing about why a path matches.
package explorer
