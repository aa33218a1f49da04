package recommend

import (
	"testing"

	"ghostpipe/pkg/textbuf"
)

func TestBuildDetailContextsOrderStability(t *testing.T) {
	proc := NewProcessor(textbuf.IndentOptions{TabWidth: 4})
	rc := &RequestContext{} // no snapshot: reformat passes through

	candidates := []Candidate{
		{Content: "return x"},
		{Content: "return x"},
		{Content: "return x"},
	}
	details := proc.BuildDetailContexts(rc, "", candidates, "req_1")

	if len(details) != 3 {
		t.Fatalf("got %d details, want 3: discarding must flag, never remove", len(details))
	}
	if details[0].Discarded {
		t.Errorf("first occurrence discarded")
	}
	if !details[1].Discarded || !details[2].Discarded {
		t.Errorf("later duplicates kept: %v %v", details[1].Discarded, details[2].Discarded)
	}
	for i, d := range details {
		if d.RequestID != "req_1" {
			t.Errorf("detail %d has request id %q", i, d.RequestID)
		}
		if d.Original.Content != "return x" {
			t.Errorf("detail %d lost its original candidate", i)
		}
	}
}

func TestBuildDetailContextsUserInput(t *testing.T) {
	proc := NewProcessor(textbuf.IndentOptions{TabWidth: 4})
	rc := &RequestContext{}

	testCases := []struct {
		content     string
		userInput   string
		wantStale   bool
		description string
	}{
		{"return x", "ret", false, "typed text is a prefix of the candidate"},
		{"foo", "ret", true, "typed text diverged from the candidate"},
		{"return x", "", false, "nothing typed yet"},
	}

	for _, tc := range testCases {
		details := proc.BuildDetailContexts(rc, tc.userInput, []Candidate{{Content: tc.content}}, "r")
		if details[0].Discarded != tc.wantStale {
			t.Errorf("%s: discarded = %v, want %v", tc.description, details[0].Discarded, tc.wantStale)
		}
	}
}

func TestBuildDetailContextsTruncationToEmpty(t *testing.T) {
	proc := NewProcessor(textbuf.IndentOptions{TabWidth: 4})
	rc := &RequestContext{
		Snapshot:   &Snapshot{Text: "bar"},
		Invocation: 0,
		Caret:      0,
	}

	// Both candidates duplicate the right context entirely; each must be
	// discarded with its own truncation flag.
	candidates := []Candidate{{Content: "bar"}, {Content: "bar"}, {Content: ""}}
	details := proc.BuildDetailContexts(rc, "", candidates, "r")

	for i := 0; i < 2; i++ {
		if !details[i].Discarded {
			t.Errorf("candidate %d not discarded after truncating to empty", i)
		}
		if !details[i].WasTruncated {
			t.Errorf("candidate %d not flagged as truncated", i)
		}
	}
	if details[2].WasTruncated {
		t.Errorf("empty candidate flagged as truncated without losing anything")
	}
	if !details[2].Discarded {
		t.Errorf("empty candidate kept")
	}
}

func TestBuildDetailContextsDedupeKeyIsProcessedContent(t *testing.T) {
	proc := NewProcessor(textbuf.IndentOptions{TabWidth: 4})
	rc := &RequestContext{
		Snapshot:   &Snapshot{Text: "bar"},
		Invocation: 0,
		Caret:      0,
	}

	// "xbar" loses its "bar" suffix to the right context and collides with
	// the plain "x" only after truncation.
	candidates := []Candidate{{Content: "x"}, {Content: "xbar"}}
	details := proc.BuildDetailContexts(rc, "", candidates, "r")

	if details[0].Discarded {
		t.Errorf("first candidate discarded")
	}
	if !details[1].Discarded {
		t.Errorf("post-truncation duplicate kept")
	}
	if !details[1].WasTruncated {
		t.Errorf("truncated duplicate not flagged as truncated")
	}
	if details[0].WasTruncated {
		t.Errorf("untruncated candidate flagged as truncated")
	}
	if details[1].Processed.Content != "x" {
		t.Errorf("processed content = %q, want %q", details[1].Processed.Content, "x")
	}
}
