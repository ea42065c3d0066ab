package nav

import (
	"slices"
	"sort"
	"strings"

	"git.home.luguber.info/inful/navexpand/internal/util/sets"
)

// PageSet is the set of known page paths. It is the only oracle used to tell
// pages from directory references and is immutable once built.
type PageSet struct {
	members  sets.Set[string]
	sorted   []string
	maxDepth int
}

// NewPageSet builds a page set from forward-slash separated paths.
// Duplicates are collapsed.
func NewPageSet(paths ...string) *PageSet {
	members := sets.New(paths...)
	sorted := sets.Sorted(members)
	maxDepth := 0
	for _, p := range sorted {
		if d := strings.Count(p, "/") + 1; d > maxDepth {
			maxDepth = d
		}
	}
	return &PageSet{members: members, sorted: sorted, maxDepth: maxDepth}
}

// Has reports whether path is a known page.
func (p *PageSet) Has(path string) bool {
	if p == nil {
		return false
	}
	return p.members.Has(path)
}

// Len returns the number of pages.
func (p *PageSet) Len() int {
	if p == nil {
		return 0
	}
	return len(p.sorted)
}

// Paths returns all pages in ascending order.
func (p *PageSet) Paths() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.sorted)
}

// MaxDepth returns the largest number of '/'-separated segments of any page.
func (p *PageSet) MaxDepth() int {
	if p == nil {
		return 0
	}
	return p.maxDepth
}

// WithPrefix returns the pages starting with prefix (a raw string prefix, not
// a path-aware one), ascending or descending.
func (p *PageSet) WithPrefix(prefix string, descending bool) []string {
	if p == nil {
		return nil
	}
	// Pages sharing a prefix form one contiguous run of the sorted slice.
	start := sort.SearchStrings(p.sorted, prefix)
	end := start
	for end < len(p.sorted) && strings.HasPrefix(p.sorted[end], prefix) {
		end++
	}
	out := slices.Clone(p.sorted[start:end])
	if descending {
		slices.Reverse(out)
	}
	return out
}
