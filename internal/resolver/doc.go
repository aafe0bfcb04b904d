// Package resolver infers a project's third-party dependencies from its
// import statements and pins them to the versions installed in the active
// interpreter.
package resolver
