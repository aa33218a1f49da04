package recommend

import (
	"ghostpipe/internal/utils"
	"ghostpipe/pkg/textbuf"
)

// Processor runs candidates through the truncate, reformat and dedup stages.
// The zero value is usable; Indent controls the reformatting style.
type Processor struct {
	Indent textbuf.IndentOptions
}

// NewProcessor returns a Processor with the given indentation style.
func NewProcessor(indent textbuf.IndentOptions) *Processor {
	return &Processor{Indent: indent}
}

// Reformat re-applies indentation to the candidate's content as if it had been
// inserted at the invocation offset, and remaps every reference span through
// the edit. The input candidate is never modified.
//
// Two conditions make this a no-op by design rather than an error: no document
// snapshot is available, or the caret has advanced past the candidate's
// would-be end offset, meaning the user typed beyond anything the candidate
// could still apply to.
func (p *Processor) Reformat(rc *RequestContext, c Candidate) Candidate {
	if rc == nil || rc.Snapshot == nil {
		return c
	}
	if rc.Invocation < 0 || rc.Invocation > len(rc.Snapshot.Text) {
		return c
	}
	end := rc.Invocation + len(c.Content)
	if rc.Caret > end {
		return c
	}

	// Simulate the insertion in a scratch copy. The live document is never
	// touched.
	buf := textbuf.New(rc.Snapshot.Text)
	buf.Insert(rc.Invocation, c.Content)

	whole := buf.Mark(rc.Invocation, end)
	refMarks := make([]textbuf.Marker, len(c.References))
	for i, ref := range c.References {
		refMarks[i] = buf.Mark(rc.Invocation+ref.Span.Start, rc.Invocation+ref.Span.End)
	}

	// Only text the user has not typed yet gets reformatted.
	from := rc.Caret
	if from < rc.Invocation {
		from = rc.Invocation
	}
	buf.Reindent(rc.Invocation, from, end, p.Indent)

	doc := buf.String()
	ws, we := buf.Bounds(whole)
	content := doc[ws:we]

	refs := make([]Reference, len(c.References))
	for i := range c.References {
		ms, me := buf.Bounds(refMarks[i])
		// Trailing newlines the indent pass may have left inside the marked
		// range are not part of the reference.
		stop := ms + utils.LastNonNewline(doc[ms:me])
		refs[i] = Reference{
			Span:    Span{Start: ms - ws, End: stop - ws},
			License: c.References[i].License,
		}
	}
	return Candidate{Content: content, References: refs}
}
