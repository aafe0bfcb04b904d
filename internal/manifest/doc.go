// Package manifest models the requirements file pyproj generates: one
// "name==version" line per dependency, sorted by name, no header. Rendering
// is deterministic so rebuilding with unchanged inputs produces identical bytes.
package manifest
