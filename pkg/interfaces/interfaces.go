// Package interfaces defines the core interfaces used throughout the application.
package interfaces

import "github.com/Veraticus/haystack/pkg/types"

// LineSource provides the lines of a named input. Unreadable inputs yield no
// lines rather than an error.
type LineSource interface {
	Lines(name string) []string
}

// Formatter renders a record as text.
type Formatter interface {
	Format(rec types.Record) string
}

// RecordHandler consumes scan results for one input.
type RecordHandler interface {
	HandleRecord(file string, rec types.Record) error
}
