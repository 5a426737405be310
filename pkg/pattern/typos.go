package pattern

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	colourRe = regexp.MustCompile(`(?i)colou?r`)

	// typoClasses are applied in order; no class contains a letter that a
	// later class rewrites.
	typoClasses = []string{
		`[SsZz]+`,
		`[Tt]+`,
		`[CcKk]+`,
		`[Ll]+`,
		`[EeIi]`,
		`[OoUu]`,
		`[Nn]+`,
		`[Ff]+`,
	}
	typoRes = compileTypoClasses()
)

func compileTypoClasses() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(typoClasses))
	for i, class := range typoClasses {
		res[i] = regexp.MustCompile("(?i)" + class)
	}
	return res
}

// ExpandForTypos turns word into a regular expression fragment that also
// matches common English misspellings: doubled or swapped consonants, confused
// vowels and the colour/color variants. The fragment relies on
// case-insensitive matching.
func ExpandForTypos(word string) string {
	out := colourRe.ReplaceAllLiteralString(word, "colou?r")
	for i, re := range typoRes {
		out = re.ReplaceAllLiteralString(out, typoClasses[i])
	}
	return out
}

// NewTypoRegex builds a case-insensitive expression matching text with its
// words expanded by ExpandForTypos. Other characters match literally. Unless
// the Whole flag is set the expression may start anywhere in a line, so it
// behaves like a fixed-string search.
func NewTypoRegex(text string, flags Flags) (*Regex, error) {
	var b strings.Builder
	if !flags.Has(Whole) {
		b.WriteString(`.*?`)
	}
	for i := 0; i < len(text); {
		if isLetter(text[i]) {
			j := i
			for j < len(text) && isLetter(text[j]) {
				j++
			}
			if j-i >= 2 {
				b.WriteString(ExpandForTypos(text[i:j]))
			} else {
				b.WriteString(text[i:j])
			}
			i = j
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(regexp.QuoteMeta(text[i : i+size]))
		i += size
	}
	return NewRegex(b.String(), flags|CaseInsensitive)
}
