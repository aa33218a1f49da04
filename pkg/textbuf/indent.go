package textbuf

import "strings"

// IndentOptions selects the whitespace style the reindent pass writes.
type IndentOptions struct {
	TabWidth int  // columns per tab stop; defaults to 4 when <= 0
	UseTabs  bool // emit tabs (padded with spaces) instead of plain spaces
}

func (o IndentOptions) tabWidth() int {
	if o.TabWidth <= 0 {
		return 4
	}
	return o.TabWidth
}

// Reindent rewrites the leading whitespace of every line that begins inside
// [start, end) so the block lines up with the line containing anchor. Each
// line keeps its indent depth relative to the shallowest line of the block;
// that delta is re-applied on top of the anchor line's indent in the
// configured style. Lines holding nothing but whitespace are stripped bare.
// The line containing start itself is left alone when start falls mid-line:
// its indentation sits before text the user already typed.
//
// All rewrites go through Replace, so tracked ranges follow along.
func (b *Buffer) Reindent(anchor, start, end int, opts IndentOptions) {
	if start < 0 {
		start = 0
	}
	if end > len(b.text) {
		end = len(b.text)
	}
	if start >= end {
		return
	}
	if anchor < 0 {
		anchor = 0
	}
	if anchor > len(b.text) {
		anchor = len(b.text)
	}

	tw := opts.tabWidth()
	anchorWidth := b.indentWidth(b.lineStart(anchor), tw)

	type line struct {
		start int
		wsEnd int
		width int
		blank bool
	}
	var lines []line
	base := -1
	collect := func(ls int) {
		we := ls
		for we < len(b.text) && (b.text[we] == ' ' || b.text[we] == '\t') {
			we++
		}
		blank := we == len(b.text) || b.text[we] == '\n'
		width := columnWidth(b.text[ls:we], tw)
		if !blank && (base < 0 || width < base) {
			base = width
		}
		lines = append(lines, line{start: ls, wsEnd: we, width: width, blank: blank})
	}

	if start == 0 || b.text[start-1] == '\n' {
		collect(start)
	}
	for i := start + 1; i < end; i++ {
		if b.text[i-1] == '\n' {
			collect(i)
		}
	}
	if len(lines) == 0 {
		return
	}
	if base < 0 {
		base = 0
	}

	// Back to front so untouched start offsets stay valid.
	for i := len(lines) - 1; i >= 0; i-- {
		ln := lines[i]
		if ln.blank {
			if ln.wsEnd > ln.start {
				b.Replace(ln.start, ln.wsEnd, "")
			}
			continue
		}
		width := anchorWidth + (ln.width - base)
		if width < 0 {
			width = 0
		}
		indent := makeIndent(width, tw, opts.UseTabs)
		if indent != string(b.text[ln.start:ln.wsEnd]) {
			b.Replace(ln.start, ln.wsEnd, indent)
		}
	}
}

// lineStart returns the offset of the first byte of the line containing p.
func (b *Buffer) lineStart(p int) int {
	for p > 0 && b.text[p-1] != '\n' {
		p--
	}
	return p
}

// indentWidth measures the leading whitespace of the line starting at ls in
// columns.
func (b *Buffer) indentWidth(ls, tabWidth int) int {
	we := ls
	for we < len(b.text) && (b.text[we] == ' ' || b.text[we] == '\t') {
		we++
	}
	return columnWidth(b.text[ls:we], tabWidth)
}

func columnWidth(ws []byte, tabWidth int) int {
	width := 0
	for _, c := range ws {
		if c == '\t' {
			width = (width/tabWidth + 1) * tabWidth
		} else {
			width++
		}
	}
	return width
}

func makeIndent(width, tabWidth int, useTabs bool) string {
	if !useTabs {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", width/tabWidth) + strings.Repeat(" ", width%tabWidth)
}
