// Package project holds the metadata collected by "pyproj create" and checks
// it before any file is written: project names must be importable Python
// identifiers, and metadata documents are validated against an embedded
// JSON schema.
package project
