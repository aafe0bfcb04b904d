// Package pkgindex builds the name to version index of installed Python
// distributions. The index comes from a Provider; the default provider runs
// "pip freeze" through the project interpreter and parses its name==version
// lines.
package pkgindex
