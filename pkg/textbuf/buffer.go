/*
Package textbuf provides the disposable document copy the reformatting stage
edits: an owned text buffer plus an arena of tracked ranges whose bounds are
recomputed on every edit, so logical ranges survive mutations without pointer
aliasing into live editor state.
*/
package textbuf

import "fmt"

// Marker is a stable handle to a tracked range inside a Buffer. It stays valid
// for the lifetime of the buffer and its bounds follow every edit.
type Marker int

type span struct {
	start int
	end   int
}

// Buffer is an independent, throwaway copy of a document. It is not safe for
// concurrent use; each candidate gets its own.
type Buffer struct {
	text    []byte
	markers []span
}

// New builds a buffer owning a copy of text.
func New(text string) *Buffer {
	return &Buffer{text: []byte(text)}
}

// Len returns the current text length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// String returns the current text.
func (b *Buffer) String() string { return string(b.text) }

// Slice returns the text in [start, end).
func (b *Buffer) Slice(start, end int) string {
	b.checkRange(start, end, "Slice")
	return string(b.text[start:end])
}

// Mark installs a tracked range over [start, end) and returns its handle.
func (b *Buffer) Mark(start, end int) Marker {
	b.checkRange(start, end, "Mark")
	b.markers = append(b.markers, span{start: start, end: end})
	return Marker(len(b.markers) - 1)
}

// Bounds returns the current bounds of a tracked range.
func (b *Buffer) Bounds(m Marker) (start, end int) {
	if m < 0 || int(m) >= len(b.markers) {
		panic(fmt.Sprintf("textbuf: unknown marker %d", m))
	}
	s := b.markers[m]
	return s.start, s.end
}

// Insert places text at offset at, shifting everything after it.
func (b *Buffer) Insert(at int, text string) {
	b.Replace(at, at, text)
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Replace substitutes the text in [start, end) with text and adjusts every
// tracked range: ranges before the edit are untouched, ranges after it shift
// by the length delta, and ranges overlapping it expand or contract so they
// keep covering the surviving logical text.
func (b *Buffer) Replace(start, end int, text string) {
	b.checkRange(start, end, "Replace")
	ln := len(text)
	for i := range b.markers {
		m := &b.markers[i]
		m.start = adjustStart(m.start, start, end, ln)
		m.end = adjustEnd(m.end, start, end, ln)
	}
	next := make([]byte, 0, len(b.text)-(end-start)+ln)
	next = append(next, b.text[:start]...)
	next = append(next, text...)
	next = append(next, b.text[end:]...)
	b.text = next
}

// adjustStart maps a range start through a replacement of [s, e) by ln bytes.
// Text inserted exactly at a range start stays outside the range, so leading
// indentation added in front of a marked span shifts it instead of growing it.
func adjustStart(p, s, e, ln int) int {
	if s == e {
		if p >= s {
			return p + ln
		}
		return p
	}
	return adjustInside(p, s, e, ln)
}

// adjustEnd maps a range end through a replacement of [s, e) by ln bytes.
// Text inserted exactly at a range end stays outside the range; insertions
// strictly inside grow it.
func adjustEnd(p, s, e, ln int) int {
	if s == e {
		if p > s {
			return p + ln
		}
		return p
	}
	return adjustInside(p, s, e, ln)
}

func adjustInside(p, s, e, ln int) int {
	switch {
	case p <= s:
		return p
	case p >= e:
		return p + ln - (e - s)
	default:
		// Position fell inside the replaced region. Clamp monotonically so
		// start <= end is preserved across any pair of mapped offsets.
		if d := p - s; d < ln {
			return s + d
		}
		return s + ln
	}
}

func (b *Buffer) checkRange(start, end int, op string) {
	if start < 0 || end < start || end > len(b.text) {
		panic(fmt.Sprintf("textbuf: %s range [%d, %d) outside buffer of length %d", op, start, end, len(b.text)))
	}
}
