package utils

import "strings"

// FirstLine returns the text up to, not including, the first newline.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// CutTrailingNewlines splits s into its body and the run of newlines that
// terminates it. Either part may be empty.
func CutTrailingNewlines(s string) (body, tail string) {
	i := len(s)
	for i > 0 && s[i-1] == '\n' {
		i--
	}
	return s[:i], s[i:]
}

// LastNonNewline returns the index one past the last non-newline byte in s,
// which is 0 when s holds nothing but newlines.
func LastNonNewline(s string) int {
	body, _ := CutTrailingNewlines(s)
	return len(body)
}

// Preview flattens s into a short single-line form for log output.
func Preview(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")
	if max > 0 && len(s) > max {
		return s[:max] + "…"
	}
	return s
}
