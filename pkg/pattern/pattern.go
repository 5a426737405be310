// Package pattern provides the fixed-string, regular expression and
// approximate matchers used to find trigger and anchor lines.
package pattern

// MatchInfo describes a single successful match.
type MatchInfo struct {
	Text  string
	Start int
	End   int
	// Captures holds every named group of the pattern. Groups that did not
	// participate in the match are present with an empty value.
	Captures map[string]string
}

// Pattern matches single lines of text. Implementations are immutable and
// safe for concurrent use.
type Pattern interface {
	// Matches reports whether line satisfies the pattern. Regular
	// expressions are anchored at the start of line.
	Matches(line string) (bool, *MatchInfo)
	// Match returns the match anchored at the start of line, or nil.
	Match(line string) *MatchInfo
	// Search returns the leftmost match anywhere in line, or nil.
	Search(line string) *MatchInfo
	// FindAll returns all non-overlapping matches in line.
	FindAll(line string) []string
	// String returns the stored pattern text.
	String() string
	// Spec returns a pattern specification that Parse turns back into an
	// equivalent pattern.
	Spec() string
	// Flags returns the flags the pattern was built with.
	Flags() Flags
}
