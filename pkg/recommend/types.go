/*
Package recommend implements the post-processing pipeline for raw code
completion candidates.

Candidates arrive as an ordered list from an external completion source. Each
one is truncated against the text already present after the cursor, re-indented
to match the surrounding code style, and flagged for discarding when it is
empty, a duplicate, or inconsistent with what the user has typed since the
request went out. The surviving entries are later split into render chunks
aligned to sync points supplied by the UI layer.

Nothing in this package performs I/O or mutates live editor state; the
reformatting step works on a disposable textbuf copy of the document.
*/
package recommend

// Span marks a half-open byte range [Start, End) inside a candidate's
// content. Offsets are always relative to the owning candidate, never to the
// document.
type Span struct {
	Start int
	End   int
}

// Reference attributes a sub-range of a candidate's content to a known
// external source.
type Reference struct {
	Span    Span
	License string
}

// Candidate is one proposed completion plus its attribution references.
// Values are never mutated in place; the pipeline builds new ones.
type Candidate struct {
	Content    string
	References []Reference
}

// Snapshot is a read-only copy of the document text taken when the completion
// request was issued.
type Snapshot struct {
	Text string
}

// RequestContext captures everything the pipeline needs to know about one
// completion invocation. It lives for a single invocation and is replaced
// wholesale when a new request supersedes it.
type RequestContext struct {
	Snapshot   *Snapshot // nil when no document is available
	Invocation int       // absolute offset where completion was invoked
	Caret      int       // caret offset at processing time
}

// RightContext returns the document text immediately following the cursor at
// invocation time, or "" when no snapshot is available.
func (rc *RequestContext) RightContext() string {
	if rc == nil || rc.Snapshot == nil {
		return ""
	}
	if rc.Invocation < 0 || rc.Invocation > len(rc.Snapshot.Text) {
		return ""
	}
	return rc.Snapshot.Text[rc.Invocation:]
}

// DetailContext is the per-candidate output record of the pipeline. Discarded
// entries stay in the sequence so callers can correlate by position.
type DetailContext struct {
	RequestID    string
	Original     Candidate
	Processed    Candidate
	Discarded    bool
	WasTruncated bool
}

// SyncPoint correlates an offset in a processed candidate's content with an
// offset in the UI's render coordinate space.
type SyncPoint struct {
	Source int
	Render int
}

// RecommendationChunk is one renderable fragment of a candidate.
type RecommendationChunk struct {
	Text         string
	SourceOffset int
	RenderOffset int
}

// withContent rebuilds a candidate around new content, clamping every
// reference span so it stays inside the new bounds.
func withContent(c Candidate, content string) Candidate {
	if content == c.Content {
		return c
	}
	refs := make([]Reference, len(c.References))
	for i, ref := range c.References {
		start, end := ref.Span.Start, ref.Span.End
		if start > len(content) {
			start = len(content)
		}
		if end > len(content) {
			end = len(content)
		}
		if start < 0 {
			start = 0
		}
		if end < start {
			end = start
		}
		refs[i] = Reference{Span: Span{Start: start, End: end}, License: ref.License}
	}
	return Candidate{Content: content, References: refs}
}
