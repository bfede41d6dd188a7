// Package analysis provides the detection passes over a loaded dump:
// file-format signature scanning and printable-string extraction, plus the
// row index that ties findings to display rows.
package analysis

// Constants for analysis operations
const (
	// DefaultMinRunLength is the minimum printable-run length reported by
	// the string detector.
	DefaultMinRunLength = 4

	// MaxStringPreview is the maximum number of characters of a detected
	// string shown in listings before truncation.
	MaxStringPreview = 64
)
