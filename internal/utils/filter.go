package utils

// ContentFilter tracks candidate contents that have already been emitted so
// later duplicates can be flagged. Matching is exact and case-sensitive:
// completion text that differs only in case is not the same completion.
// One filter is scoped to a single processing call.
type ContentFilter struct {
	seen map[string]bool
}

// NewContentFilter creates an empty filter.
func NewContentFilter() *ContentFilter {
	return &ContentFilter{seen: make(map[string]bool)}
}

// ShouldKeep reports whether content has not been seen before, recording it
// either way. The first occurrence wins; every later call with the same
// content returns false.
func (f *ContentFilter) ShouldKeep(content string) bool {
	if f.seen[content] {
		return false
	}
	f.seen[content] = true
	return true
}
