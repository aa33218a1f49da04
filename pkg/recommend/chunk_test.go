package recommend

import (
	"strings"
	"testing"
)

func TestBuildChunks(t *testing.T) {
	content := "abcdef"
	points := []SyncPoint{{Source: 0, Render: 0}, {Source: 2, Render: 2}, {Source: 5, Render: 6}}

	chunks := BuildChunks(content, points)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: the final sync point bounds, it does not emit", len(chunks))
	}
	want := []RecommendationChunk{
		{Text: "ab", SourceOffset: 0, RenderOffset: 0},
		{Text: "cde", SourceOffset: 2, RenderOffset: 2},
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, chunks[i], want[i])
		}
	}
}

func TestBuildChunksReconstruction(t *testing.T) {
	content := "line one\nline two\nline three"
	points := []SyncPoint{{Source: 0, Render: 0}, {Source: 9, Render: 9}, {Source: 18, Render: 20}, {Source: 28, Render: 30}}

	chunks := BuildChunks(content, points)
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(c.Text)
	}
	if got, want := sb.String(), content[points[0].Source:points[len(points)-1].Source]; got != want {
		t.Errorf("concatenated chunks = %q, want %q", got, want)
	}
}

func TestBuildChunksDegenerate(t *testing.T) {
	if got := BuildChunks("abc", nil); got != nil {
		t.Errorf("no sync points produced %d chunks", len(got))
	}
	if got := BuildChunks("abc", []SyncPoint{{Source: 1, Render: 1}}); got != nil {
		t.Errorf("single sync point produced %d chunks", len(got))
	}
}

func TestBuildChunksRejectsBrokenOffsets(t *testing.T) {
	testCases := []struct {
		content     string
		points      []SyncPoint
		description string
	}{
		{"abc", []SyncPoint{{Source: 2, Render: 0}, {Source: 1, Render: 1}}, "decreasing source offsets"},
		{"abc", []SyncPoint{{Source: 0, Render: 2}, {Source: 1, Render: 1}}, "decreasing render offsets"},
		{"abc", []SyncPoint{{Source: 0, Render: 0}, {Source: 9, Render: 9}}, "source offset outside content"},
	}

	for _, tc := range testCases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic, offset tracking bugs must fail fast", tc.description)
				}
			}()
			BuildChunks(tc.content, tc.points)
		}()
	}
}
