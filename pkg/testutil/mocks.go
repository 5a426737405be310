package testutil

import (
	"sync"
	"time"

	"github.com/Veraticus/haystack/pkg/types"
)

// Write is one call recorded by MockWriter.
type Write struct {
	File string
	Text string
}

// MockWriter is a thread-safe mock implementation of output.Writer for testing
type MockWriter struct {
	mu       sync.Mutex
	writes   []Write
	attempts []Write // Track all write attempts
	writeErr error
	delay    time.Duration
}

// NewMockWriter creates a new mock writer
func NewMockWriter() *MockWriter {
	return &MockWriter{
		writes:   []Write{},
		attempts: []Write{},
	}
}

// Write implements the Writer interface
func (m *MockWriter) Write(file, text string) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts = append(m.attempts, Write{File: file, Text: text})
	if m.writeErr != nil {
		return m.writeErr
	}

	m.writes = append(m.writes, Write{File: file, Text: text})
	return nil
}

// GetWrites returns a copy of successful writes
func (m *MockWriter) GetWrites() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Write, len(m.writes))
	copy(result, m.writes)
	return result
}

// GetAttempts returns a copy of all attempted writes (including failures)
func (m *MockWriter) GetAttempts() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Write, len(m.attempts))
	copy(result, m.attempts)
	return result
}

// Text returns all successfully written text concatenated
func (m *MockWriter) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := ""
	for _, w := range m.writes {
		s += w.Text
	}
	return s
}

// SetError sets the error to return on Write calls
func (m *MockWriter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// SetDelay sets a delay before each Write call
func (m *MockWriter) SetDelay(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = delay
}

// MockLineSource is a mock implementation of interfaces.LineSource for testing
type MockLineSource struct {
	mu        sync.Mutex
	files     map[string][]string
	requested []string
}

// NewMockLineSource creates a line source serving the given files
func NewMockLineSource(files map[string][]string) *MockLineSource {
	return &MockLineSource{files: files}
}

// Lines implements the LineSource interface. Unknown names yield no lines.
func (m *MockLineSource) Lines(name string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requested = append(m.requested, name)
	lines, ok := m.files[name]
	if !ok {
		return []string{}
	}
	result := make([]string, len(lines))
	copy(result, lines)
	return result
}

// GetRequested returns the names passed to Lines in call order
func (m *MockLineSource) GetRequested() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]string, len(m.requested))
	copy(result, m.requested)
	return result
}

// MockFormatter renders a record as the value of a single field
type MockFormatter struct {
	Field string
}

// Format implements the Formatter interface
func (m MockFormatter) Format(rec types.Record) string {
	return rec.Get(m.Field)
}
