// Package types contains shared data structures used across the application.
package types

// Field names the scanner fills in. Named captures of the trigger and anchor
// patterns are added under their own names.
const (
	FieldFile          = "file"
	FieldFirstLine     = "first_line"
	FieldFirstLineNum  = "first_line_num"
	FieldSecondLine    = "second_line"
	FieldSecondLineNum = "second_line_num"
	FieldResults       = "results"
	FieldContext       = "context"
)

// Record maps field names to values for one trigger hit.
type Record map[string]string

// Get returns the value of name, or "" when the field is absent.
func (r Record) Get(name string) string {
	return r[name]
}

// Has reports whether the field is present.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Merge copies values into the record, overwriting fields of the same name.
func (r Record) Merge(values map[string]string) {
	for k, v := range values {
		r[k] = v
	}
}

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	c.Merge(r)
	return c
}
