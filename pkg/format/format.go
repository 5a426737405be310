// Package format renders scan records through a user supplied template.
//
// A template is plain text with {name} tokens replaced by record fields and
// {name:color} tokens replaced by the coloured field. Unknown fields render
// as empty text.
package format

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Veraticus/haystack/pkg/types"
)

// DefaultFormat prints the file, both line numbers and both lines.
const DefaultFormat = "{file}:{first_line_num},{second_line_num} {first_line} -> {second_line}"

var tokenRe = regexp.MustCompile(`\{(\w+)?(:(\w+))?\}`)

type segment struct {
	text  string
	field bool
	style *lipgloss.Style
}

// Template is a parsed output format.
type Template struct {
	raw      string
	segments []segment
}

// Unescape turns the two-character sequences \t and \n into tab and newline.
func Unescape(s string) string {
	return strings.NewReplacer(`\t`, "\t", `\n`, "\n").Replace(s)
}

// Parse builds a template. Colour tokens are styled through r; a nil
// renderer or one without colour support leaves them plain.
func Parse(format string, r *lipgloss.Renderer) *Template {
	colored := r != nil && r.ColorProfile() != termenv.Ascii

	t := &Template{raw: format}
	last := 0
	for _, loc := range tokenRe.FindAllStringSubmatchIndex(format, -1) {
		if loc[0] > last {
			t.segments = append(t.segments, segment{text: format[last:loc[0]]})
		}
		seg := segment{field: true}
		if loc[2] >= 0 {
			seg.text = format[loc[2]:loc[3]]
		}
		if colored && loc[6] >= 0 {
			if c, ok := LookupColor(format[loc[6]:loc[7]]); ok {
				style := r.NewStyle().Foreground(c).TabWidth(lipgloss.NoTabConversion)
				seg.style = &style
			}
		}
		t.segments = append(t.segments, seg)
		last = loc[1]
	}
	if last < len(format) {
		t.segments = append(t.segments, segment{text: format[last:]})
	}
	return t
}

// Format renders rec.
func (t *Template) Format(rec types.Record) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if !seg.field {
			b.WriteString(seg.text)
			continue
		}
		value := rec.Get(seg.text)
		if seg.style != nil && value != "" {
			value = paint(*seg.style, value)
		}
		b.WriteString(value)
	}
	return b.String()
}

// paint styles each line on its own so multi-line values keep their shape.
func paint(style lipgloss.Style, value string) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// EndsWithNewline reports whether rendered records already end a line.
func (t *Template) EndsWithNewline() bool {
	return strings.HasSuffix(t.raw, "\n")
}

// String returns the template text.
func (t *Template) String() string { return t.raw }
