package recommend

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// PrefixIndex maps processed candidate contents to their positions in a
// DetailContext sequence, so the still-valid candidates for a typed prefix can
// be found without rerunning the pipeline. Scoped to one processed request;
// rebuild it when a new invocation replaces the old one.
type PrefixIndex struct {
	trie *patricia.Trie
}

// NewPrefixIndex returns an empty index.
func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{trie: patricia.NewTrie()}
}

// BuildPrefixIndex indexes the surviving entries of a processed sequence by
// their reformatted content.
func BuildPrefixIndex(details []DetailContext) *PrefixIndex {
	idx := NewPrefixIndex()
	for i, d := range details {
		if d.Discarded || d.Processed.Content == "" {
			continue
		}
		idx.Add(d.Processed.Content, i)
	}
	return idx
}

// Add records that the detail at position i carries the given content.
func (x *PrefixIndex) Add(content string, i int) {
	if content == "" {
		return
	}
	key := patricia.Prefix(content)
	if item := x.trie.Get(key); item != nil {
		x.trie.Set(key, append(item.([]int), i))
		return
	}
	x.trie.Insert(key, []int{i})
}

// Match returns the positions of all indexed contents that still start with
// what the user has typed, in ascending order. An empty prefix matches
// everything.
func (x *PrefixIndex) Match(typed string) []int {
	var out []int
	_ = x.trie.VisitSubtree(patricia.Prefix(typed), func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, item.([]int)...)
		return nil
	})
	sort.Ints(out)
	return out
}
