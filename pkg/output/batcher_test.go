package output

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Veraticus/haystack/pkg/testutil"
)

func TestBatcher_Order(t *testing.T) {
	tests := []struct {
		name      string
		doneOrder []int
		want      []testutil.Write
	}{
		{
			name:      "in order",
			doneOrder: []int{0, 1, 2},
			want: []testutil.Write{
				{File: "a", Text: "a1\na2\n"},
				{File: "c", Text: "c1\n"},
			},
		},
		{
			name:      "reverse order",
			doneOrder: []int{2, 1, 0},
			want: []testutil.Write{
				{File: "a", Text: "a1\na2\n"},
				{File: "c", Text: "c1\n"},
			},
		},
		{
			name:      "first slot unfinished",
			doneOrder: []int{1, 2},
			want:      []testutil.Write{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.NewMockWriter()
			b := NewBatcher(w)

			a := b.Open(0, "a")
			_ = a.Write("a", "a1\n")
			_ = a.Write("a", "a2\n")
			b.Open(1, "b") // no results
			c := b.Open(2, "c")
			_ = c.Write("c", "c1\n")

			for _, slot := range tt.doneOrder {
				if err := b.Done(slot); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			if diff := cmp.Diff(tt.want, w.GetWrites()); diff != "" {
				t.Errorf("unexpected writes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBatcher_WriteError(t *testing.T) {
	w := testutil.NewMockWriter()
	w.SetError(errors.New("disk full"))
	b := NewBatcher(w)

	_ = b.Open(0, "a").Write("a", "x\n")
	_ = b.Open(1, "b").Write("b", "y\n")
	_ = b.Done(1)

	if err := b.Done(0); err == nil {
		t.Error("expected write error")
	}
	if got := len(w.GetAttempts()); got != 2 {
		t.Errorf("expected both batches to be attempted but got %d", got)
	}
}

func TestBatcher_Concurrent(t *testing.T) {
	w := testutil.NewMockWriter()
	b := NewBatcher(w)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			name := string(rune('a' + slot))
			_ = b.Open(slot, name).Write(name, name)
			_ = b.Done(slot)
		}(i)
	}
	wg.Wait()

	writes := w.GetWrites()
	if len(writes) != n {
		t.Fatalf("expected %d writes but got %d", n, len(writes))
	}
	for i, wr := range writes {
		if want := string(rune('a' + i)); wr.File != want {
			t.Errorf("write %d: expected file %q but got %q", i, want, wr.File)
		}
	}
}
