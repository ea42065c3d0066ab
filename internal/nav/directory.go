package nav

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/navexpand/internal/util/sets"
)

// dirExpansion is the result of resolving one directory reference.
type dirExpansion struct {
	entries []*Node
	pages   int
	dirs    int
}

// subdirInserted reports whether any sub-directory entry was generated; those
// entries still hold directory references and need another pass.
func (d dirExpansion) subdirInserted() bool { return d.dirs > 0 }

// expandDirectory lists the entries that replace the directory reference
// prefix. A prefix that is itself a page yields nothing.
//
// A page is a direct child when it has exactly one segment more than the
// trimmed prefix. Direct children (or every page, in flat mode) become page
// entries when their file name matches pattern. Deeper pages collapse into a
// single {name: dir} entry per sub-directory when recursing, and are dropped
// otherwise.
func expandDirectory(prefix string, pages *PageSet, opts Options, pattern *regexp.Regexp) dirExpansion {
	var out dirExpansion
	if pages.Has(prefix) {
		return out
	}

	topLevel := len(strings.Split(strings.Trim(prefix, "/"), "/")) + 1
	selector := prefix
	if opts.StrictPrefix && prefix != "" && !strings.HasSuffix(prefix, "/") {
		selector += "/"
	}

	inserted := sets.New[string]()
	for _, path := range pages.WithPrefix(selector, opts.ReverseSortDirectory) {
		segments := strings.Split(path, "/")
		fileLevel := len(segments)
		fileName := segments[fileLevel-1]

		switch {
		case fileLevel == topLevel || opts.Flat:
			if !matchesFileName(pattern, fileName) {
				continue
			}
			out.pages++
			if opts.FileNameAsTitle {
				out.entries = append(out.entries, Ref(path))
			} else {
				out.entries = append(out.entries, Titled(strings.Join(segments[:fileLevel-1], "/"), Ref(path)))
			}
		case opts.Recurse && fileLevel >= topLevel+1:
			dir := strings.Join(segments[:topLevel], "/")
			if inserted.Has(dir) {
				continue
			}
			inserted.Add(dir)
			out.dirs++
			out.entries = append(out.entries, Titled(segments[topLevel-1], Ref(dir)))
		}
	}
	return out
}
