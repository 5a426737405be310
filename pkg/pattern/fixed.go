package pattern

import "strings"

// Fixed matches a literal string.
type Fixed struct {
	text   string
	folded string
	flags  Flags
}

// NewFixed creates a literal pattern.
func NewFixed(text string, flags Flags) *Fixed {
	p := &Fixed{text: text, flags: flags}
	p.folded = p.fold(text)
	return p
}

func (p *Fixed) fold(s string) string {
	if p.flags.Has(CaseInsensitive) {
		return strings.ToLower(s)
	}
	return s
}

// Matches reports whether the literal occurs in line, or equals line when
// the Whole flag is set.
func (p *Fixed) Matches(line string) (bool, *MatchInfo) {
	m := p.Search(line)
	return m != nil, m
}

// Match returns the literal when line starts with it.
func (p *Fixed) Match(line string) *MatchInfo {
	subj := p.fold(line)
	if p.flags.Has(Whole) {
		return p.whole(line, subj)
	}
	if !strings.HasPrefix(subj, p.folded) {
		return nil
	}
	return p.info(line, subj, 0)
}

// Search returns the first occurrence of the literal in line.
func (p *Fixed) Search(line string) *MatchInfo {
	subj := p.fold(line)
	if p.flags.Has(Whole) {
		return p.whole(line, subj)
	}
	idx := strings.Index(subj, p.folded)
	if idx < 0 {
		return nil
	}
	return p.info(line, subj, idx)
}

// FindAll returns every non-overlapping occurrence of the literal.
func (p *Fixed) FindAll(line string) []string {
	if p.text == "" {
		return nil
	}
	if p.flags.Has(Whole) {
		if m := p.Search(line); m != nil {
			return []string{m.Text}
		}
		return nil
	}
	subj := p.fold(line)
	var found []string
	for off := 0; ; {
		idx := strings.Index(subj[off:], p.folded)
		if idx < 0 {
			return found
		}
		found = append(found, p.info(line, subj, off+idx).Text)
		off += idx + len(p.folded)
	}
}

func (p *Fixed) whole(line, subj string) *MatchInfo {
	if subj != p.folded {
		return nil
	}
	return &MatchInfo{Text: line, Start: 0, End: len(line)}
}

// info maps an offset in the folded subject back onto line. Folding can
// change byte lengths for a few runes; the folded text is reported then.
func (p *Fixed) info(line, subj string, idx int) *MatchInfo {
	end := idx + len(p.folded)
	src := line
	if len(subj) != len(line) {
		src = subj
	}
	return &MatchInfo{Text: src[idx:end], Start: idx, End: end}
}

func (p *Fixed) String() string { return p.text }

// Spec returns the literal itself.
func (p *Fixed) Spec() string { return p.text }

func (p *Fixed) Flags() Flags { return p.flags }
