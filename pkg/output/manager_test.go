package output

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Veraticus/haystack/pkg/testutil"
	"github.com/Veraticus/haystack/pkg/types"
)

func TestManager(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []testutil.Write
	}{
		{
			name: "instant",
			opts: Options{Instant: true, Newline: true},
			want: []testutil.Write{
				{File: "b", Text: "b1\n"},
				{File: "a", Text: "a1\n"},
				{File: "a", Text: "a2\n"},
			},
		},
		{
			name: "collected",
			opts: Options{Newline: true},
			want: []testutil.Write{
				{File: "a", Text: "a1\na2\n"},
				{File: "b", Text: "b1\n"},
			},
		},
		{
			name: "collected without newline",
			opts: Options{},
			want: []testutil.Write{
				{File: "a", Text: "a1a2"},
				{File: "b", Text: "b1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.NewMockWriter()
			m := NewManager(testutil.MockFormatter{Field: types.FieldFirstLine}, w, tt.opts)

			a := m.Open(0, "a")
			b := m.Open(1, "b")
			_ = b.HandleRecord("b", types.Record{types.FieldFirstLine: "b1"})
			_ = a.HandleRecord("a", types.Record{types.FieldFirstLine: "a1"})
			_ = a.HandleRecord("a", types.Record{types.FieldFirstLine: "a2"})
			_ = m.Close(1)
			_ = m.Close(0)

			if diff := cmp.Diff(tt.want, w.GetWrites()); diff != "" {
				t.Errorf("unexpected writes (-want +got):\n%s", diff)
			}
			if m.Count() != 3 {
				t.Errorf("expected count 3 but got %d", m.Count())
			}
		})
	}
}
