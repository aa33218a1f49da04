/*
Package server implements msgpack IPC for the recommendation pipeline.

The server package provides a minimal interface for candidate post-processing
using msgpack serialization over stdin/stdout.

Messages are processed synchronously with timing info included in responses.
Each request carries an ID field, a command discriminator, and the payload
fields for that command.

# IPC

Process a completion request (document text, offsets, raw candidates):

	{"id": "req_001", "cmd": "process", "doc": "...", "inv": 120, "car": 123,
	 "u": "ret", "cs": [{"t": "return x", "refs": [{"s": 0, "e": 8}]}]}

The server answers with one result per candidate, in the original order,
flagged rather than filtered:

	{"id": "req_001", "res": [{"i": 0, "t": "return x", "d": false, "tr": false}],
	 "c": 1, "t": 145}

Chunk a processed candidate against the UI's sync points:

	{"id": "req_002", "cmd": "chunks", "text": "return x",
	 "pts": [{"s": 0, "r": 0}, {"s": 6, "r": 6}]}

Re-filter the last processed request as the user keeps typing, without
reprocessing:

	{"id": "req_003", "cmd": "refilter", "typed": "retu"}

Error frames carry the request ID, a message and an HTTP-ish code:

	{"id": "req_003", "e": "no processed request to refilter", "c": 400}

The binary msgpack framing keeps messages ~30 to 50% smaller than JSON and
avoids any ambiguity around newlines embedded in document text.
*/
package server

// Request is the envelope for every incoming message. Cmd selects the
// operation; unrelated payload fields stay at their zero values.
type Request struct {
	ID  string `msgpack:"id"`
	Cmd string `msgpack:"cmd"`

	// process
	Doc        string          `msgpack:"doc,omitempty"`
	Invocation int             `msgpack:"inv,omitempty"`
	Caret      int             `msgpack:"car,omitempty"`
	UserInput  string          `msgpack:"u,omitempty"`
	Candidates []WireCandidate `msgpack:"cs,omitempty"`

	// chunks
	Content string      `msgpack:"text,omitempty"`
	Points  []WirePoint `msgpack:"pts,omitempty"`

	// refilter
	Typed string `msgpack:"typed,omitempty"`
}

// WireCandidate - one raw candidate completion
type WireCandidate struct {
	Text string          `msgpack:"t"`
	Refs []WireReference `msgpack:"refs,omitempty"`
}

// WireReference - license attribution span, offsets into the owning candidate
type WireReference struct {
	Start   int    `msgpack:"s"`
	End     int    `msgpack:"e"`
	License string `msgpack:"lic,omitempty"`
}

// WirePoint - one sync point pairing a source offset with a render offset
type WirePoint struct {
	Source int `msgpack:"s"`
	Render int `msgpack:"r"`
}

// ProcessResult - per-candidate outcome, index-aligned with the request
type ProcessResult struct {
	Index     int             `msgpack:"i"`
	Text      string          `msgpack:"t"`
	Discarded bool            `msgpack:"d"`
	Truncated bool            `msgpack:"tr"`
	Refs      []WireReference `msgpack:"refs,omitempty"`
}

// ProcessResponse - pipeline response, one result per candidate
type ProcessResponse struct {
	ID        string          `msgpack:"id"`
	Results   []ProcessResult `msgpack:"res"`
	Count     int             `msgpack:"c"`
	TimeTaken int64           `msgpack:"t"`
}

// WireChunk - one renderable fragment
type WireChunk struct {
	Text   string `msgpack:"t"`
	Source int    `msgpack:"s"`
	Render int    `msgpack:"r"`
}

// ChunksResponse - chunking response
type ChunksResponse struct {
	ID        string      `msgpack:"id"`
	Chunks    []WireChunk `msgpack:"ch"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
}

// RefilterResponse - indices of candidates still consistent with typed text
type RefilterResponse struct {
	ID      string `msgpack:"id"`
	Indices []int  `msgpack:"idx"`
	Count   int    `msgpack:"c"`
}

// StatusResponse - readiness and health frames
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
