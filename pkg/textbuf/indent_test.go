package textbuf

import "testing"

func TestReindent(t *testing.T) {
	testCases := []struct {
		text        string
		anchor      int
		start, end  int
		opts        IndentOptions
		want        string
		description string
	}{
		{
			text: "  a\nx\n  y\nz", anchor: 0, start: 4, end: 10,
			opts: IndentOptions{TabWidth: 4},
			want: "  a\n  x\n    y\nz",
			description: "block picks up anchor indent, relative depth kept",
		},
		{
			text: "  a\nx\n  y\nz", anchor: 0, start: 4, end: 10,
			opts: IndentOptions{TabWidth: 4, UseTabs: true},
			want: "  a\n  x\n\ty\nz",
			description: "tab style rewrites full stops as tabs",
		},
		{
			text: "a\n   \nb", anchor: 0, start: 2, end: 7,
			opts: IndentOptions{TabWidth: 4},
			want: "a\n\nb",
			description: "whitespace-only lines are stripped bare",
		},
		{
			text: "  a\nx\n  y\nz", anchor: 0, start: 5, end: 10,
			opts: IndentOptions{TabWidth: 4},
			want: "  a\nx\n  y\nz",
			description: "line containing a mid-line start is left alone",
		},
		{
			text: "\tdeep\nshallow\n", anchor: 0, start: 6, end: 13,
			opts: IndentOptions{TabWidth: 4, UseTabs: true},
			want: "\tdeep\n\tshallow\n",
			description: "tab-indented anchor measured in columns",
		},
	}

	for _, tc := range testCases {
		b := New(tc.text)
		b.Reindent(tc.anchor, tc.start, tc.end, tc.opts)
		if got := b.String(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.description, got, tc.want)
		}
	}
}

func TestReindentMovesMarkers(t *testing.T) {
	b := New("  a\nx\n  y\nz")
	m := b.Mark(8, 9) // "y"
	b.Reindent(0, 4, 10, IndentOptions{TabWidth: 4})

	start, end := b.Bounds(m)
	if got := b.Slice(start, end); got != "y" {
		t.Errorf("marker drifted off its text: %q", got)
	}
	if start != 12 || end != 13 {
		t.Errorf("bounds = [%d, %d), want [12, 13)", start, end)
	}
}

func TestReindentNoop(t *testing.T) {
	b := New("plain\n")
	b.Reindent(0, 6, 6, IndentOptions{TabWidth: 4})
	if got := b.String(); got != "plain\n" {
		t.Errorf("empty range edited the buffer: %q", got)
	}
}
