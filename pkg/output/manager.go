package output

import (
	"sync/atomic"

	"github.com/Veraticus/haystack/pkg/interfaces"
	"github.com/Veraticus/haystack/pkg/types"
)

// Options controls a Manager.
type Options struct {
	// Instant writes each result as soon as it is handled.
	Instant bool
	// Newline is appended to every rendered result.
	Newline bool
}

// Manager renders records and routes them to the writer, directly or
// through per-input batches.
type Manager struct {
	formatter interfaces.Formatter
	writer    Writer
	opts      Options
	batcher   *Batcher

	count atomic.Int64
}

// NewManager creates a manager.
func NewManager(f interfaces.Formatter, w Writer, opts Options) *Manager {
	m := &Manager{
		formatter: f,
		writer:    w,
		opts:      opts,
	}
	if !opts.Instant {
		m.batcher = NewBatcher(w)
	}
	return m
}

// Open returns the handler for the input in slot. Every opened slot must be
// closed, in any order, for collected results to be written.
func (m *Manager) Open(slot int, file string) interfaces.RecordHandler {
	h := &inputHandler{m: m, out: m.writer}
	if m.batcher != nil {
		h.out = m.batcher.Open(slot, file)
	}
	return h
}

// Close finishes slot. In collected mode this may write it and any later
// slots that finished before it.
func (m *Manager) Close(slot int) error {
	if m.batcher == nil {
		return nil
	}
	return m.batcher.Done(slot)
}

// Count returns the number of records handled.
func (m *Manager) Count() int {
	return int(m.count.Load())
}

func (m *Manager) render(rec types.Record) string {
	text := m.formatter.Format(rec)
	if m.opts.Newline {
		text += "\n"
	}
	return text
}

type inputHandler struct {
	m   *Manager
	out Writer
}

func (h *inputHandler) HandleRecord(file string, rec types.Record) error {
	h.m.count.Add(1)
	return h.out.Write(file, h.m.render(rec))
}
