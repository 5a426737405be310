package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Regex matches a regular expression. When built with NewFuzzyRegex it also
// scores candidate lines by edit distance against the literal words of the
// original expression.
type Regex struct {
	raw      string
	source   string
	flags    Flags
	expr     string
	search   *regexp.Regexp
	anchored *regexp.Regexp

	fuzzy   bool
	words   []string
	maxDist int
}

// NewRegex compiles body with flags.
func NewRegex(body string, flags Flags) (*Regex, error) {
	r := &Regex{raw: body, source: body, flags: flags}
	if err := r.compile(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewFuzzyRegex compiles an approximate pattern. Every literal word of body is
// generalised to \w+ and remembered by position; a line matches when the
// generalised expression matches and Distance stays within maxDist.
func NewFuzzyRegex(body string, flags Flags, maxDist int) (*Regex, error) {
	source, words := rewriteWords(body)
	r := &Regex{
		raw:     body,
		source:  source,
		flags:   flags,
		fuzzy:   true,
		words:   words,
		maxDist: maxDist,
	}
	if err := r.compile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Regex) compile() error {
	expr := translate(r.source, r.flags)
	if r.flags.Has(Whole) {
		expr = `\A(?:` + expr + `)\z`
	}
	inline := r.flags.inline()
	search, err := regexp.Compile(inline + expr)
	if err != nil {
		return &CompileError{Pattern: r.raw, Err: err}
	}
	anchored, err := regexp.Compile(inline + `\A(?:` + expr + `)`)
	if err != nil {
		return &CompileError{Pattern: r.raw, Err: err}
	}
	r.expr = expr
	r.search = search
	r.anchored = anchored
	return nil
}

// Matches reports whether the expression matches at the start of line. For
// approximate patterns the line's word distance must also be within budget.
func (r *Regex) Matches(line string) (bool, *MatchInfo) {
	m := r.Match(line)
	if m == nil {
		return false, nil
	}
	if r.fuzzy && r.Distance(line) > r.maxDist {
		return false, m
	}
	return true, m
}

// Match returns the match anchored at the start of line.
func (r *Regex) Match(line string) *MatchInfo {
	return info(r.anchored, line, r.anchored.FindStringSubmatchIndex(line))
}

// Search returns the leftmost match anywhere in line.
func (r *Regex) Search(line string) *MatchInfo {
	return info(r.search, line, r.search.FindStringSubmatchIndex(line))
}

// FindAll returns all non-overlapping matches of the expression.
func (r *Regex) FindAll(line string) []string {
	return r.search.FindAllString(line, -1)
}

// Distance sums the Levenshtein distances between the words of line and the
// pattern's words at the same positions. Words beyond the pattern's own cost
// their length.
func (r *Regex) Distance(line string) int {
	fold := r.flags.Has(CaseInsensitive)
	d := 0
	for i, word := range splitWords(line) {
		if i >= len(r.words) {
			d += len(word)
			continue
		}
		want := r.words[i]
		if fold {
			want, word = strings.ToLower(want), strings.ToLower(word)
		}
		d += Levenshtein(want, word)
	}
	return d
}

// String returns the stored expression: the body as given, or the rewritten
// body for approximate patterns. Whole-line anchoring is not included.
func (r *Regex) String() string { return r.source }

// Raw returns the body the pattern was constructed from.
func (r *Regex) Raw() string { return r.raw }

// Expr returns the expression handed to the regexp engine, without inline
// flags.
func (r *Regex) Expr() string { return r.expr }

func (r *Regex) Flags() Flags { return r.flags }

// Fuzzy reports whether the pattern is approximate.
func (r *Regex) Fuzzy() bool { return r.fuzzy }

// Words returns a copy of the word table. Index i holds the i-th literal
// word of the original body.
func (r *Regex) Words() []string {
	return append([]string(nil), r.words...)
}

// MaxDistance returns the edit distance budget of an approximate pattern.
func (r *Regex) MaxDistance() int { return r.maxDist }

// Spec returns the /body/flags form of the pattern.
func (r *Regex) Spec() string {
	tokens := r.flags.Letters()
	if r.fuzzy {
		tokens = append(tokens, "a:"+strconv.Itoa(r.maxDist))
	}
	return fmt.Sprintf("/%s/%s", r.raw, strings.Join(tokens, ","))
}

func info(re *regexp.Regexp, line string, loc []int) *MatchInfo {
	if loc == nil {
		return nil
	}
	m := &MatchInfo{Text: line[loc[0]:loc[1]], Start: loc[0], End: loc[1]}
	for i, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		if m.Captures == nil {
			m.Captures = make(map[string]string)
		}
		var val string
		if loc[2*i] >= 0 {
			val = line[loc[2*i]:loc[2*i+1]]
		}
		m.Captures[name] = val
	}
	return m
}

// translate rewrites body for RE2 according to the verbose and unicode flags.
func translate(body string, flags Flags) string {
	verbose := flags.Has(Verbose)
	wide := flags.Has(Unicode)
	if !verbose && !wide {
		return body
	}
	var b strings.Builder
	inClass := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			i++
			e := body[i]
			if wide {
				if w, ok := unicodeClass(e, inClass); ok {
					b.WriteString(w)
					continue
				}
			}
			if verbose && isSpace(e) {
				fmt.Fprintf(&b, `\x%02x`, e)
				continue
			}
			b.WriteByte('\\')
			b.WriteByte(e)
		case inClass:
			if c == '[' && i+1 < len(body) && body[i+1] == ':' {
				if end := strings.Index(body[i:], ":]"); end >= 0 {
					b.WriteString(body[i : i+end+2])
					i += end + 1
					continue
				}
			}
			if c == ']' {
				inClass = false
			}
			b.WriteByte(c)
		case c == '[':
			inClass = true
			b.WriteByte(c)
			if i+1 < len(body) && body[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(body) && body[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
		case verbose && isSpace(c):
		case verbose && c == '#':
			for i+1 < len(body) && body[i+1] != '\n' {
				i++
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unicodeClass(e byte, inClass bool) (string, bool) {
	switch e {
	case 'w':
		if inClass {
			return `\p{L}\p{N}_`, true
		}
		return `[\p{L}\p{N}_]`, true
	case 'W':
		if inClass {
			return "", false
		}
		return `[^\p{L}\p{N}_]`, true
	case 'd':
		return `\p{Nd}`, true
	case 'D':
		return `\P{Nd}`, true
	}
	return "", false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
