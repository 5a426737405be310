package pattern

import "strings"

// wordToken replaces every literal word of an approximate pattern.
const wordToken = `\w+`

// rewriteWords replaces each literal word of pattern with wordToken and
// returns the words in order of appearance. A word is a run of two or more
// ASCII letters or digits outside escapes, character classes, repetition
// braces and group headers such as (?P<name> or (?i).
func rewriteWords(pattern string) (string, []string) {
	var (
		b     strings.Builder
		words []string
		n     = len(pattern)
	)
	for i := 0; i < n; {
		c := pattern[i]
		var j int
		switch {
		case c == '\\':
			j = skipEscape(pattern, i)
		case c == '[':
			j = skipClass(pattern, i)
		case c == '{':
			j = skipPast(pattern, i, "}")
		case c == '(' && i+1 < n && pattern[i+1] == '?':
			j = skipGroupHead(pattern, i)
		case isAlnum(c):
			j = i
			for j < n && isAlnum(pattern[j]) {
				j++
			}
			if j-i >= 2 {
				words = append(words, pattern[i:j])
				b.WriteString(wordToken)
				i = j
				continue
			}
		default:
			j = i + 1
		}
		b.WriteString(pattern[i:j])
		i = j
	}
	return b.String(), words
}

func skipEscape(p string, i int) int {
	n := len(p)
	if i+1 >= n {
		return n
	}
	switch e := p[i+1]; {
	case e == 'x' || e == 'p' || e == 'P':
		if i+2 < n && p[i+2] == '{' {
			return skipPast(p, i+2, "}")
		}
		if e == 'x' {
			return min(i+4, n)
		}
		return min(i+3, n)
	case e == 'Q':
		return skipPast(p, i+2, `\E`)
	case e >= '0' && e <= '7':
		j := i + 1
		for j < n && j < i+4 && p[j] >= '0' && p[j] <= '7' {
			j++
		}
		return j
	}
	return i + 2
}

func skipClass(p string, i int) int {
	n := len(p)
	j := i + 1
	if j < n && p[j] == '^' {
		j++
	}
	if j < n && p[j] == ']' {
		j++
	}
	for j < n {
		switch {
		case p[j] == '\\':
			j += 2
		case p[j] == '[' && j+1 < n && p[j+1] == ':':
			if end := strings.Index(p[j:], ":]"); end >= 0 {
				j += end + 2
			} else {
				j++
			}
		case p[j] == ']':
			return j + 1
		default:
			j++
		}
	}
	return n
}

// skipGroupHead consumes "(?" and a following group name or flag letters.
func skipGroupHead(p string, i int) int {
	n := len(p)
	j := i + 2
	if j < n && p[j] == 'P' {
		j++
	}
	if j < n && p[j] == '<' {
		return skipPast(p, j, ">")
	}
	for j < n && p[j] != ')' && p[j] != ':' {
		j++
	}
	return j
}

// skipPast returns the index just after the first end found at or after i.
func skipPast(p string, i int, end string) int {
	k := strings.Index(p[i:], end)
	if k < 0 {
		return len(p)
	}
	return i + k + len(end)
}

// splitWords returns the maximal runs of ASCII letters and digits in s.
func splitWords(s string) []string {
	var words []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isAlnum(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// Levenshtein returns the unit-cost edit distance between a and b.
func Levenshtein(a, b string) int {
	s, t := []rune(a), []rune(b)
	if len(s) < len(t) {
		s, t = t, s
	}
	if len(t) == 0 {
		return len(s)
	}
	prev := make([]int, len(t)+1)
	cur := make([]int, len(t)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, cs := range s {
		cur[0] = i + 1
		for j, ct := range t {
			cost := 1
			if cs == ct {
				cost = 0
			}
			cur[j+1] = min(prev[j+1]+1, cur[j]+1, prev[j]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(t)]
}
