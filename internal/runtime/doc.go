// Package runtime wraps the external Python tooling pyproj depends on: the
// interpreter version probe, "pip freeze" for the installed-package index and
// the unittest runner. All invocations go through exec.CommandContext so the
// caller controls cancellation and timeouts.
package runtime
