package pattern

import "strings"

// Flags is a set of independent matching options. Flags are additive and
// order independent.
type Flags uint

const (
	// CaseInsensitive folds case on both the pattern and the subject.
	CaseInsensitive Flags = 1 << iota
	// Whole requires the entire line to satisfy the pattern.
	Whole
	// Multiline makes ^ and $ match at line boundaries.
	Multiline
	// DotAll lets . match newlines.
	DotAll
	// Unicode widens \w, \W, \d and \D to Unicode classes.
	Unicode
	// Verbose ignores unescaped whitespace and # comments in the pattern.
	Verbose
)

// DefaultDistance is the edit distance budget of approximate patterns when
// none is given.
const DefaultDistance = 3

var flagLetters = []struct {
	flag   Flags
	letter byte
}{
	{CaseInsensitive, 'i'},
	{Multiline, 'm'},
	{DotAll, 'd'},
	{Unicode, 'u'},
	{Verbose, 'v'},
	{Whole, 'w'},
}

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Letters returns the single-letter names of the set flags in a stable order.
func (f Flags) Letters() []string {
	var letters []string
	for _, fl := range flagLetters {
		if f.Has(fl.flag) {
			letters = append(letters, string(fl.letter))
		}
	}
	return letters
}

func (f Flags) String() string {
	return strings.Join(f.Letters(), ",")
}

// inline returns the RE2 inline flag group for f, or "" if none applies.
func (f Flags) inline() string {
	var b strings.Builder
	if f.Has(CaseInsensitive) {
		b.WriteByte('i')
	}
	if f.Has(Multiline) {
		b.WriteByte('m')
	}
	if f.Has(DotAll) {
		b.WriteByte('s')
	}
	if b.Len() == 0 {
		return ""
	}
	return "(?" + b.String() + ")"
}
