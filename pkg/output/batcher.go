package output

import (
	"strings"
	"sync"
)

// Batch collects the rendered results of one input.
type Batch struct {
	file  string
	texts []string
}

// Write appends text to the batch.
func (b *Batch) Write(_ string, text string) error {
	b.texts = append(b.texts, text)
	return nil
}

// Len returns the number of collected results.
func (b *Batch) Len() int { return len(b.texts) }

// String returns the collected results joined together.
func (b *Batch) String() string { return strings.Join(b.texts, "") }

// Batcher hands out one Batch per input slot and writes finished batches in
// slot order, whatever order the inputs finish in.
type Batcher struct {
	next Writer

	mu      sync.Mutex
	pending map[int]*Batch
	done    map[int]bool
	cursor  int
}

// NewBatcher creates a batcher that flushes to next. Slots are numbered from 0.
func NewBatcher(next Writer) *Batcher {
	return &Batcher{
		next:    next,
		pending: make(map[int]*Batch),
		done:    make(map[int]bool),
	}
}

// Open returns the batch for slot.
func (b *Batcher) Open(slot int, file string) *Batch {
	b.mu.Lock()
	defer b.mu.Unlock()

	batch, ok := b.pending[slot]
	if !ok {
		batch = &Batch{file: file}
		b.pending[slot] = batch
	}
	return batch
}

// Done marks slot finished and writes every finished batch that is next in
// order. Empty batches produce no write. The first write error is returned;
// later batches are still released.
func (b *Batcher) Done(slot int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.done[slot] = true

	var firstErr error
	for b.done[b.cursor] {
		batch := b.pending[b.cursor]
		delete(b.pending, b.cursor)
		delete(b.done, b.cursor)
		b.cursor++

		if batch == nil || batch.Len() == 0 {
			continue
		}
		if err := b.next.Write(batch.file, batch.String()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
