package recommend

import "strings"

// Overlap returns the longest suffix of a that is also a prefix of b, or ""
// when no such string exists.
//
// Suffix start positions are scanned in ascending order from
// max(0, len(a)-len(b)); ascending start means descending suffix length, so
// the first hit is the longest. Worst case O(len(a)*len(b)), which is fine for
// the few-line strings completions are made of.
func Overlap(a, b string) string {
	if a == "" || b == "" {
		return ""
	}
	start := len(a) - len(b)
	if start < 0 {
		start = 0
	}
	for i := start; i < len(a); i++ {
		if strings.HasPrefix(b, a[i:]) {
			return a[i:]
		}
	}
	return ""
}
