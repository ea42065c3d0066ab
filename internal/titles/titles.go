package titles

import (
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/navexpand/internal/logfields"
)

// Resolver looks up page titles in a documentation tree.
type Resolver struct {
	fsys   fs.FS
	logger *slog.Logger
	cache  map[string]string
}

// NewResolver returns a resolver reading pages from fsys, typically
// os.DirFS of the docs directory. A nil fsys resolves file names only.
func NewResolver(fsys fs.FS, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{fsys: fsys, logger: logger, cache: map[string]string{}}
}

// Title returns the display title of the page at p.
func (r *Resolver) Title(p string) string {
	if t, ok := r.cache[p]; ok {
		return t
	}
	t := r.resolve(p)
	r.cache[p] = t
	return t
}

func (r *Resolver) resolve(p string) string {
	if r.fsys == nil || !fs.ValidPath(p) {
		return Humanize(p)
	}
	content, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		r.logger.Debug("Page not readable, using file name", logfields.PageSource(p), logfields.Error(err))
		return Humanize(p)
	}

	fm, body, _, err := splitFrontmatter(content)
	if err != nil {
		r.logger.Warn("Malformed front matter", logfields.PageSource(p), logfields.Error(err))
		body = content
	}
	if t, err := frontmatterTitle(fm); err != nil {
		r.logger.Warn("Unreadable front matter", logfields.PageSource(p), logfields.Error(err))
	} else if t != "" {
		return t
	}
	if t := firstHeading(body); t != "" {
		return t
	}
	return Humanize(p)
}

// Humanize turns a page path into a title: the file name without its
// extension, dashes and underscores as spaces, first letter upper-cased.
func Humanize(p string) string {
	base := path.Base(p)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.Join(strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	}), " ")
	if base == "" {
		return p
	}
	first, size := utf8.DecodeRuneInString(base)
	return string(unicode.ToUpper(first)) + base[size:]
}
