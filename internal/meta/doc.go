// Package meta owns the module's self-describing metadata.
//
// Ownership boundary:
// - version, author and provenance constants
// - name-based attribute lookup and its not-found error
package meta
