// Package cli handles cmd line input for DBG and testing the pipeline stages interactively
package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"ghostpipe/internal/utils"
	"ghostpipe/pkg/recommend"
)

// InputHandler reads candidate completions from stdin and runs each one
// through the pipeline against a fixed document snapshot, printing what every
// stage did. Literal "\n" and "\t" in the input are unescaped so multi-line
// candidates can be typed on one line.
type InputHandler struct {
	proc         *recommend.Processor
	doc          string
	invocation   int
	maxInputLen  int
	showChunks   bool
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(proc *recommend.Processor, doc string, invocation, maxInputLen int, showChunks bool) *InputHandler {
	if invocation < 0 {
		invocation = 0
	}
	if invocation > len(doc) {
		invocation = len(doc)
	}
	return &InputHandler{
		proc:        proc,
		doc:         doc,
		invocation:  invocation,
		maxInputLen: maxInputLen,
		showChunks:  showChunks,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the unescaped candidate to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("ghostpipe CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a candidate and press Enter to see each pipeline stage (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		h.handleInput(unescape(line))
	}
}

// handleInput processes a single candidate and prints the outcome of every
// pipeline stage.
func (h *InputHandler) handleInput(candidate string) {
	h.requestCount++

	if len(candidate) > h.maxInputLen {
		log.Errorf("Candidate too long: %d bytes (max %d)", len(candidate), h.maxInputLen)
		return
	}

	rc := &recommend.RequestContext{
		Invocation: h.invocation,
		Caret:      h.invocation,
	}
	if h.doc != "" {
		rc.Snapshot = &recommend.Snapshot{Text: h.doc}
	}

	right := rc.RightContext()
	log.Printf("right context:  %q", utils.Preview(right, 60))
	log.Printf("overlap:        %q", recommend.Overlap(candidate, utils.FirstLine(right)))

	details := h.proc.BuildDetailContexts(rc, "", []recommend.Candidate{{Content: candidate}}, "cli")
	d := details[0]

	log.Printf("truncated:      %v", d.WasTruncated)
	log.Printf("discarded:      %v", d.Discarded)
	log.Printf("processed:      %q", utils.Preview(d.Processed.Content, 120))

	if h.showChunks && !d.Discarded {
		points := lineSyncPoints(d.Processed.Content)
		for i, c := range recommend.BuildChunks(d.Processed.Content, points) {
			log.Printf("chunk %2d @%3d:  %q", i, c.SourceOffset, utils.Preview(c.Text, 60))
		}
	}
}

// lineSyncPoints builds trivial sync points at every line start plus both
// ends, with render offsets equal to source offsets.
func lineSyncPoints(content string) []recommend.SyncPoint {
	points := []recommend.SyncPoint{{Source: 0, Render: 0}}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			points = append(points, recommend.SyncPoint{Source: i + 1, Render: i + 1})
		}
	}
	points = append(points, recommend.SyncPoint{Source: len(content), Render: len(content)})
	return points
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, "\\n", "\n")
	s = strings.ReplaceAll(s, "\\t", "\t")
	return s
}
