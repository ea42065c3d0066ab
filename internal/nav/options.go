package nav

import (
	"regexp"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
)

// DefaultFilePattern selects Markdown pages.
const DefaultFilePattern = `.*\.md$`

// Options control how a directory reference is turned into entries.
type Options struct {
	// Flat lists every page below a directory at that directory's level.
	Flat bool
	// FilePattern is matched against the final path segment, anchored at
	// the start only.
	FilePattern string
	// FileNameAsTitle emits bare page paths; otherwise pages are titled
	// with their parent directory path.
	FileNameAsTitle bool
	// Recurse emits one entry per sub-directory instead of dropping
	// deeper pages.
	Recurse bool
	// ReverseSortDirectory sorts the entries of a directory descending.
	ReverseSortDirectory bool
	// StrictPrefix only selects pages below prefix + "/", so "docs" does
	// not pick up "docs-extra/x.md".
	StrictPrefix bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		FilePattern:     DefaultFilePattern,
		FileNameAsTitle: true,
		Recurse:         true,
	}
}

// CompilePattern compiles FilePattern. Use matchesFileName to apply it.
func (o Options) CompilePattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(o.FilePattern)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid file_pattern").
			Fatal().
			UserAction().
			WithContext("pattern", o.FilePattern).
			Build()
	}
	return re, nil
}

// matchesFileName reports whether re matches name starting at its first byte.
// Leftmost-first search finds a match at offset 0 whenever one exists.
func matchesFileName(re *regexp.Regexp, name string) bool {
	loc := re.FindStringIndex(name)
	return loc != nil && loc[0] == 0
}
