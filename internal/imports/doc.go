// Package imports recognises Python import statements one line at a time and
// reduces the referenced modules to canonical top-level names. It also holds
// the read-only tables used when turning module names into dependencies: the
// alias table mapping import names to published distribution names, and the
// set of standard-library modules.
//
// The classifier is deliberately line-oriented. It understands "import a, b.c"
// and "from a import x" and nothing else: no multi-line imports, no
// expressions, no AST.
package imports
