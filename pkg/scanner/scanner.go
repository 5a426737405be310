// Package scanner correlates trigger lines with their nearest anchor lines.
package scanner

import (
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/Veraticus/haystack/pkg/pattern"
	"github.com/Veraticus/haystack/pkg/types"
)

// Options controls a scan.
type Options struct {
	// Forward searches for the anchor after the trigger instead of before it.
	Forward bool
	// MaxResults stops the scan once this many records were produced.
	// A negative value means no limit.
	MaxResults int
	// Context adds the lines from trigger to anchor as the context field.
	Context bool
	// Logger receives debug tracing. Nil discards it.
	Logger logrus.FieldLogger
}

// DefaultOptions returns backward search, no result limit and context on.
func DefaultOptions() Options {
	return Options{MaxResults: -1, Context: true}
}

// Scanner finds trigger lines and pairs each with the nearest anchor line.
// A Scanner holds no per-scan state and may be shared between goroutines.
type Scanner struct {
	trigger pattern.Pattern
	anchor  pattern.Pattern
	opts    Options
	log     logrus.FieldLogger
}

// New creates a scanner. A nil anchor makes every trigger hit a result.
func New(trigger, anchor pattern.Pattern, opts Options) *Scanner {
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Scanner{
		trigger: trigger,
		anchor:  anchor,
		opts:    opts,
		log:     log,
	}
}

// Scan returns all records for the lines of file in order.
func (s *Scanner) Scan(file string, lines []string) []types.Record {
	var records []types.Record
	for rec := range s.Records(file, lines) {
		records = append(records, rec)
	}
	return records
}

// Records yields the records for the lines of file in order. Each record is
// freshly built and owned by the consumer.
func (s *Scanner) Records(file string, lines []string) iter.Seq[types.Record] {
	return func(yield func(types.Record) bool) {
		log := s.log.WithField("file", file)
		buf := normalize(lines)
		results := 0
		for i, line := range buf {
			if s.opts.MaxResults > -1 && results >= s.opts.MaxResults {
				log.WithField("results", results).Debug("result limit reached")
				return
			}

			ok, m := s.trigger.Matches(line)
			if !ok {
				continue
			}
			rec := types.Record{
				types.FieldFile:         file,
				types.FieldFirstLine:    line,
				types.FieldFirstLineNum: strconv.Itoa(i),
				types.FieldResults:      strconv.Itoa(results),
			}
			if m != nil {
				rec.Merge(m.Captures)
			}

			if s.anchor != nil && !s.correlate(rec, buf, i) {
				log.WithField("line", i).Debug("trigger matched but no anchor found")
				continue
			}

			log.WithField("line", i).Debug("trigger matched")
			results++
			if !yield(rec) {
				return
			}
		}
	}
}

// correlate steps away from the trigger at index from until the anchor
// matches, filling the second-line fields into rec. It reports false when the
// buffer ends first.
func (s *Scanner) correlate(rec types.Record, lines []string, from int) bool {
	step := -1
	if s.opts.Forward {
		step = 1
	}
	for j := from + step; j >= 0 && j < len(lines); j += step {
		ok, m := s.anchor.Matches(lines[j])
		if !ok {
			continue
		}
		if m != nil {
			rec.Merge(m.Captures)
		}
		rec[types.FieldSecondLine] = lines[j]
		rec[types.FieldSecondLineNum] = strconv.Itoa(j)
		if s.opts.Context {
			lo, hi := min(from, j), max(from, j)
			rec[types.FieldContext] = strings.Join(lines[lo:hi+1], "\n")
		}
		return true
	}
	return false
}

// normalize strips trailing whitespace, including line terminators.
func normalize(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return out
}
