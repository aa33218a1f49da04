package server

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"ghostpipe/pkg/config"
	"ghostpipe/pkg/recommend"
)

// Server handles the IPC for candidate post-processing. It keeps the prefix
// index of the most recent process command so refilter requests can be
// answered without rerunning the pipeline.
type Server struct {
	proc  *recommend.Processor
	cfg   *config.Config
	dec   *msgpack.Decoder
	enc   *msgpack.Encoder
	out   *bufio.Writer
	index *recommend.PrefixIndex
}

// NewServer creates a new pipeline server using stdin/stdout for IPC.
func NewServer(proc *recommend.Processor, cfg *config.Config) *Server {
	return NewServerIO(proc, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server over arbitrary streams. Used by tests and by
// embedders that own the transport.
func NewServerIO(proc *recommend.Processor, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		proc: proc,
		cfg:  cfg,
		dec:  msgpack.NewDecoder(bufio.NewReader(r)),
		enc:  msgpack.NewEncoder(out),
		out:  out,
	}
}

// Start begins listening for IPC requests. It returns nil on clean EOF.
func (s *Server) Start() error {
	log.Debug("Starting server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches one decoded request.
func (s *Server) handleRequest(req Request) {
	switch req.Cmd {
	case "process":
		s.handleProcess(req)
	case "chunks":
		s.handleChunks(req)
	case "refilter":
		s.handleRefilter(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown command: %s", req.Cmd), 400)
	}
}

// handleProcess runs the full pipeline over the request's candidates and
// rebuilds the refilter index from the survivors.
func (s *Server) handleProcess(req Request) {
	if len(req.Candidates) == 0 {
		s.sendError(req.ID, "Missing 'cs' candidates", 400)
		log.Debug("Process request without candidates")
		return
	}
	if len(req.Candidates) > s.cfg.Server.MaxCandidates {
		s.sendError(req.ID, fmt.Sprintf("Too many candidates: %d (max %d)", len(req.Candidates), s.cfg.Server.MaxCandidates), 400)
		return
	}
	if len(req.Doc) > s.cfg.Server.MaxDocumentLen {
		s.sendError(req.ID, "Document exceeds maximum length", 400)
		return
	}
	for _, c := range req.Candidates {
		if len(c.Text) > s.cfg.Server.MaxContentLen {
			s.sendError(req.ID, "Candidate exceeds maximum content length", 400)
			return
		}
	}

	rc := &recommend.RequestContext{
		Invocation: req.Invocation,
		Caret:      req.Caret,
	}
	// An omitted document disables reformatting; the rest of the pipeline
	// still runs.
	if req.Doc != "" {
		rc.Snapshot = &recommend.Snapshot{Text: req.Doc}
	}

	candidates := make([]recommend.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		refs := make([]recommend.Reference, len(c.Refs))
		for j, r := range c.Refs {
			refs[j] = recommend.Reference{
				Span:    recommend.Span{Start: r.Start, End: r.End},
				License: r.License,
			}
		}
		candidates[i] = recommend.Candidate{Content: c.Text, References: refs}
	}

	start := time.Now()
	details := s.proc.BuildDetailContexts(rc, req.UserInput, candidates, req.ID)
	s.index = recommend.BuildPrefixIndex(details)
	elapsed := time.Since(start)

	results := make([]ProcessResult, len(details))
	for i, d := range details {
		refs := make([]WireReference, len(d.Processed.References))
		for j, r := range d.Processed.References {
			refs[j] = WireReference{Start: r.Span.Start, End: r.Span.End, License: r.License}
		}
		results[i] = ProcessResult{
			Index:     i,
			Text:      d.Processed.Content,
			Discarded: d.Discarded,
			Truncated: d.WasTruncated,
			Refs:      refs,
		}
	}

	s.send(ProcessResponse{
		ID:        req.ID,
		Results:   results,
		Count:     len(results),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleChunks splits a candidate's content along the client's sync points.
// Out-of-order points are a client bug; the panic from the chunker is turned
// into an error frame instead of taking the server down.
func (s *Server) handleChunks(req Request) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Chunk request %s rejected: %v", req.ID, r)
			s.sendError(req.ID, fmt.Sprintf("%v", r), 400)
		}
	}()

	points := make([]recommend.SyncPoint, len(req.Points))
	for i, p := range req.Points {
		points[i] = recommend.SyncPoint{Source: p.Source, Render: p.Render}
	}

	start := time.Now()
	chunks := recommend.BuildChunks(req.Content, points)
	elapsed := time.Since(start)

	wire := make([]WireChunk, len(chunks))
	for i, c := range chunks {
		wire[i] = WireChunk{Text: c.Text, Source: c.SourceOffset, Render: c.RenderOffset}
	}
	s.send(ChunksResponse{
		ID:        req.ID,
		Chunks:    wire,
		Count:     len(wire),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleRefilter answers from the index built by the last process command.
func (s *Server) handleRefilter(req Request) {
	if s.index == nil {
		s.sendError(req.ID, "no processed request to refilter", 400)
		return
	}
	indices := s.index.Match(req.Typed)
	s.send(RefilterResponse{ID: req.ID, Indices: indices, Count: len(indices)})
}

// send encodes a response frame and flushes it to the client.
func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		log.Errorf("Flushing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
