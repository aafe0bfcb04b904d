// Package scaffold generates new Python projects from embedded templates. It
// powers the "pyproj create" command, producing the source layout, packaging
// files (setup.cfg, setup.py, pyproject.toml, MANIFEST.in) and a starter test
// suite for a validated project.Metadata.
package scaffold
