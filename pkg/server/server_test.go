package server

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"ghostpipe/pkg/config"
	"ghostpipe/pkg/recommend"
	"ghostpipe/pkg/textbuf"
)

func runRequests(t *testing.T, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encoding request %q: %v", req.ID, err)
		}
	}

	var out bytes.Buffer
	proc := recommend.NewProcessor(textbuf.IndentOptions{TabWidth: 4})
	srv := NewServerIO(proc, config.DefaultConfig(), &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return msgpack.NewDecoder(&out)
}

func expectReady(t *testing.T, dec *msgpack.Decoder) {
	t.Helper()
	var status StatusResponse
	if err := dec.Decode(&status); err != nil {
		t.Fatalf("decoding ready frame: %v", err)
	}
	if status.Status != "ready" {
		t.Fatalf("first frame status = %q, want %q", status.Status, "ready")
	}
}

func TestServerRoundTrip(t *testing.T) {
	dec := runRequests(t,
		Request{
			ID:         "r1",
			Cmd:        "process",
			Doc:        "bar)\nbaz",
			Invocation: 0,
			Caret:      0,
			UserInput:  "foo",
			Candidates: []WireCandidate{
				{Text: "foo(bar)\n"},
				{Text: "foo"},
			},
		},
		Request{ID: "r2", Cmd: "refilter", Typed: "foo("},
		Request{
			ID:      "r3",
			Cmd:     "chunks",
			Content: "foo(\n",
			Points:  []WirePoint{{Source: 0, Render: 0}, {Source: 4, Render: 4}},
		},
		Request{ID: "r4", Cmd: "health"},
	)
	expectReady(t, dec)

	var proc ProcessResponse
	if err := dec.Decode(&proc); err != nil {
		t.Fatalf("decoding process response: %v", err)
	}
	if proc.ID != "r1" || proc.Count != 2 {
		t.Fatalf("process response id=%q count=%d", proc.ID, proc.Count)
	}
	if got := proc.Results[0]; got.Text != "foo(\n" || !got.Truncated || got.Discarded {
		t.Errorf("result 0 = %+v, want truncated %q", got, "foo(\n")
	}
	if got := proc.Results[1]; got.Text != "foo" || got.Truncated || got.Discarded {
		t.Errorf("result 1 = %+v, want untouched %q", got, "foo")
	}

	var refilter RefilterResponse
	if err := dec.Decode(&refilter); err != nil {
		t.Fatalf("decoding refilter response: %v", err)
	}
	if !reflect.DeepEqual(refilter.Indices, []int{0}) {
		t.Errorf("refilter indices = %v, want [0]", refilter.Indices)
	}

	var chunks ChunksResponse
	if err := dec.Decode(&chunks); err != nil {
		t.Fatalf("decoding chunks response: %v", err)
	}
	if chunks.Count != 1 || chunks.Chunks[0].Text != "foo(" {
		t.Errorf("chunks response = %+v, want one chunk %q", chunks, "foo(")
	}

	var health StatusResponse
	if err := dec.Decode(&health); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if health.ID != "r4" || health.Status != "ok" {
		t.Errorf("health response = %+v", health)
	}
}

func TestServerErrorFrames(t *testing.T) {
	testCases := []struct {
		req         Request
		description string
	}{
		{Request{ID: "e1", Cmd: "flarp"}, "unknown command"},
		{Request{ID: "e2", Cmd: "process"}, "process without candidates"},
		{Request{ID: "e3", Cmd: "refilter", Typed: "x"}, "refilter before any process"},
		{
			Request{ID: "e4", Cmd: "chunks", Content: "abc",
				Points: []WirePoint{{Source: 2, Render: 2}, {Source: 1, Render: 1}}},
			"chunks with decreasing offsets",
		},
	}

	for _, tc := range testCases {
		dec := runRequests(t, tc.req)
		expectReady(t, dec)

		var errResp ErrorResponse
		if err := dec.Decode(&errResp); err != nil {
			t.Fatalf("%s: decoding error frame: %v", tc.description, err)
		}
		if errResp.ID != tc.req.ID || errResp.Code != 400 || errResp.Error == "" {
			t.Errorf("%s: error frame = %+v", tc.description, errResp)
		}
	}
}

func TestServerRejectsOversizedRequests(t *testing.T) {
	cfg := config.DefaultConfig()

	over := make([]WireCandidate, cfg.Server.MaxCandidates+1)
	for i := range over {
		over[i] = WireCandidate{Text: "x"}
	}
	dec := runRequests(t, Request{ID: "big", Cmd: "process", Candidates: over})
	expectReady(t, dec)

	var errResp ErrorResponse
	if err := dec.Decode(&errResp); err != nil {
		t.Fatalf("decoding error frame: %v", err)
	}
	if errResp.Code != 400 {
		t.Errorf("oversized request answered with code %d, want 400", errResp.Code)
	}
}
