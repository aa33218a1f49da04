package recommend

import (
	"strings"

	"ghostpipe/internal/utils"
)

// Truncate removes the suffix of content that duplicates text already present
// after the cursor, so that accepting the candidate does not repeat the right
// context.
//
// Single-line candidates are matched against the first line of the right
// context only; matching against later lines produces false positives. When
// the right context's first line is empty the whole right context is used.
// For multi-line candidates the overlap is accepted only when everything
// before it is newline-free, i.e. the overlap consumes nothing but the
// candidate's final content line; anything wider would silently delete valid
// interior lines. Trailing newlines survive the trim.
//
// The result may be empty. That is a normal outcome and the signal for the
// dedup stage to discard the candidate.
func Truncate(content, rightContext string) string {
	if content == "" || rightContext == "" {
		return content
	}
	firstLine := utils.FirstLine(rightContext)

	if !strings.Contains(content, "\n") {
		ov := Overlap(content, firstLine)
		return content[:len(content)-len(ov)]
	}

	if firstLine == "" {
		ov := Overlap(content, rightContext)
		return content[:len(content)-len(ov)]
	}

	body, tail := utils.CutTrailingNewlines(content)
	ov := Overlap(body, rightContext)
	if strings.Contains(body[:len(body)-len(ov)], "\n") {
		// Overlap reaches into a non-final line. Drop it.
		ov = ""
	}
	return body[:len(body)-len(ov)] + tail
}
