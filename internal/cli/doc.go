// Package cli defines the Cobra command tree for the pyproj CLI. Each file
// in this package registers one top-level command (create, build, clean,
// test, etc.) with the root command. Command implementations delegate to
// internal packages for the work and only handle flag parsing, output
// formatting and user interaction.
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried on the command context.
package cli
