package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

// specRe recognises /body/flags. The body is greedy, so the last slash
// followed only by flag characters ends it.
var specRe = regexp.MustCompile(`(?s)\A/(.*)/([\w:,]*)\z`)

var flagWords = map[string]Flags{
	"i":       CaseInsensitive,
	"icase":   CaseInsensitive,
	"m":       Multiline,
	"multi":   Multiline,
	"d":       DotAll,
	"dotall":  DotAll,
	"u":       Unicode,
	"unicode": Unicode,
	"v":       Verbose,
	"verbose": Verbose,
	"w":       Whole,
	"whole":   Whole,
}

// Parse builds a pattern from a specification. A string of the form
// /body/flags is a regular expression; anything else is a fixed string
// matched with the base flags. Flags are comma separated, each a letter or
// word with an optional :N parameter. A flag starting with "a" makes the
// pattern approximate with a distance budget of N (DefaultDistance when N is
// missing or not an integer). Unknown flags are ignored.
func Parse(spec string, base Flags) (Pattern, error) {
	m := specRe.FindStringSubmatch(spec)
	if m == nil {
		return NewFixed(spec, base), nil
	}
	body := m[1]
	flags, fuzzy, dist := parseFlags(m[2])
	flags |= base
	var (
		re  *Regex
		err error
	)
	if fuzzy {
		re, err = NewFuzzyRegex(body, flags, dist)
	} else {
		re, err = NewRegex(body, flags)
	}
	if err != nil {
		return nil, err
	}
	return re, nil
}

// ParseOptional parses spec when present. A nil spec yields a nil Pattern,
// which a Scanner reads as "no anchor pattern".
func ParseOptional(spec *string, base Flags) (Pattern, error) {
	if spec == nil {
		return nil, nil
	}
	return Parse(*spec, base)
}

func parseFlags(list string) (flags Flags, fuzzy bool, dist int) {
	dist = DefaultDistance
	for _, token := range strings.Split(list, ",") {
		name, param, hasParam := strings.Cut(token, ":")
		if name == "" {
			continue
		}
		if f, ok := flagWords[name]; ok {
			flags |= f
			continue
		}
		// A run of known letters such as "ia" sets each of them.
		if letters, approx, ok := splitLetters(name); ok {
			flags |= letters
			if approx {
				fuzzy = true
				dist = parseDistance(param, hasParam)
			}
			continue
		}
		if strings.HasPrefix(name, "a") {
			fuzzy = true
			dist = parseDistance(param, hasParam)
		}
	}
	return flags, fuzzy, dist
}

func splitLetters(name string) (flags Flags, approx bool, ok bool) {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == 'a' {
			approx = true
			continue
		}
		f, known := flagWords[string(c)]
		if !known {
			return 0, false, false
		}
		flags |= f
	}
	return flags, approx, true
}

func parseDistance(param string, hasParam bool) int {
	if !hasParam {
		return DefaultDistance
	}
	n, err := strconv.Atoi(param)
	if err != nil {
		return DefaultDistance
	}
	return n
}
