// Package output writes rendered scan results, either as they are found or
// collected per input and flushed in input order.
package output

import (
	"io"
	"sync"
)

// Writer receives rendered results for one input.
type Writer interface {
	Write(file, text string) error
}

// StreamWriter writes results to an io.Writer as they arrive. It is safe for
// concurrent use; each result is written in one call.
type StreamWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStreamWriter creates a StreamWriter.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// Write writes text to the underlying writer.
func (s *StreamWriter) Write(_ string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := io.WriteString(s.w, text)
	return err
}
