package nav

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/logfields"
	"git.home.luguber.info/inful/navexpand/internal/metrics"
)

// Stats summarises one expansion pass.
type Stats struct {
	DirectoriesExpanded  int
	DirectoriesUnmatched int
	PageEntries          int
	DirectoryEntries     int
}

// Expander rewrites navigation trees against a fixed page set and options.
// It holds no per-call state and may be reused.
type Expander struct {
	pages    *PageSet
	opts     Options
	pattern  *regexp.Regexp
	logger   *slog.Logger
	recorder metrics.Recorder
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithLogger routes trace output to l. A nil logger keeps the default,
// which discards everything.
func WithLogger(l *slog.Logger) ExpanderOption {
	return func(e *Expander) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder reports expansion metrics to r.
func WithRecorder(r metrics.Recorder) ExpanderOption {
	return func(e *Expander) {
		if r != nil {
			e.recorder = r
		}
	}
}

// NewExpander validates opts and returns an Expander. An invalid
// FilePattern is reported as a fatal configuration error.
func NewExpander(pages *PageSet, opts Options, options ...ExpanderOption) (*Expander, error) {
	pattern, err := opts.CompilePattern()
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = NewPageSet()
	}
	e := &Expander{
		pages:    pages,
		opts:     opts,
		pattern:  pattern,
		logger:   slog.New(slog.DiscardHandler),
		recorder: metrics.NoopRecorder{},
	}
	for _, o := range options {
		o(e)
	}
	return e, nil
}

// Expand is a convenience wrapper around NewExpander and Expander.Expand.
func Expand(root *Node, pages *PageSet, opts Options) (*Node, error) {
	e, err := NewExpander(pages, opts)
	if err != nil {
		return nil, err
	}
	out, _, err := e.Expand(root)
	return out, err
}

// Expand returns a new tree in which every directory reference has been
// replaced by its generated entries; root itself is left unmodified. A nil
// root is a no-op.
func (e *Expander) Expand(root *Node) (*Node, Stats, error) {
	if root == nil {
		e.logger.Debug("No navigation to expand")
		return nil, Stats{}, nil
	}

	start := time.Now()
	debug := e.logger.Enabled(context.Background(), slog.LevelDebug)
	if debug {
		e.logger.Debug("Navigation before expansion", slog.String("nav", root.String()))
	}

	w := &walker{e: e, limit: e.pages.MaxDepth() + 1}
	out, err := w.node(root, 0)
	if err != nil {
		return nil, w.stats, err
	}

	elapsed := time.Since(start)
	e.recorder.ObserveExpansionDuration(elapsed)
	if debug {
		e.logger.Debug("Navigation after expansion",
			slog.String("nav", out.String()),
			logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	}
	return out, w.stats, nil
}

// walker carries the state of one Expand call. depth counts how many times
// generated sub-directory entries have been re-entered; hand-written nesting
// does not add to it.
type walker struct {
	e     *Expander
	stats Stats
	limit int
}

func (w *walker) node(n *Node, depth int) (*Node, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case KindGroup:
		children, err := w.sequence(n.Children, depth)
		if err != nil {
			return nil, err
		}
		return Group(children...), nil
	case KindSection:
		return w.section(n, depth)
	default:
		return n.Clone(), nil
	}
}

// sequence expands the entries of a group. A directory reference is replaced
// in place by its entries, so siblings keep their relative positions.
func (w *walker) sequence(in []*Node, depth int) ([]*Node, error) {
	out := make([]*Node, 0, len(in))
	for _, child := range in {
		switch kindOf(child) {
		case KindRef:
			res, err := w.resolve(child.Ref, depth)
			if err != nil {
				return nil, err
			}
			if len(res.entries) == 0 {
				out = append(out, Ref(child.Ref))
				continue
			}
			entries := res.entries
			if res.subdirInserted() {
				if entries, err = w.sequence(entries, depth+1); err != nil {
					return nil, err
				}
			}
			out = append(out, entries...)
		case KindSection:
			s, err := w.section(child, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		default:
			// Nested lists without a title and scalars are left as they are.
			out = append(out, child.Clone())
		}
	}
	return out, nil
}

// section expands every title of a section. Multi-key sections are handled
// key by key in document order.
func (w *walker) section(n *Node, depth int) (*Node, error) {
	items := make([]Item, 0, len(n.Items))
	for _, it := range n.Items {
		value := it.Node
		switch kindOf(value) {
		case KindGroup:
			children, err := w.sequence(value.Children, depth)
			if err != nil {
				return nil, err
			}
			items = append(items, Item{Title: it.Title, Node: Group(children...)})
		case KindRef:
			res, err := w.resolve(value.Ref, depth)
			if err != nil {
				return nil, err
			}
			if len(res.entries) == 0 {
				items = append(items, Item{Title: it.Title, Node: Ref(value.Ref)})
				continue
			}
			entries := res.entries
			if res.subdirInserted() {
				if entries, err = w.sequence(entries, depth+1); err != nil {
					return nil, err
				}
			}
			items = append(items, Item{Title: it.Title, Node: Group(entries...)})
		case KindSection:
			nested, err := w.section(value, depth)
			if err != nil {
				return nil, err
			}
			items = append(items, Item{Title: it.Title, Node: nested})
		default:
			items = append(items, Item{Title: it.Title, Node: value.Clone()})
		}
	}
	return Section(items...), nil
}

// resolve applies the directory test to ref and expands it when it is not a
// known page. A reference with no matching pages yields no entries, and the
// caller keeps it verbatim.
func (w *walker) resolve(ref string, depth int) (dirExpansion, error) {
	if w.e.pages.Has(ref) {
		return dirExpansion{}, nil
	}
	if depth > w.limit {
		// Only reachable with page paths containing empty segments ("a//b.md"),
		// where a generated sub-directory can equal its parent.
		return dirExpansion{}, errors.NavigationError("directory expansion does not terminate").
			WithContext("prefix", ref).
			WithContext("depth", depth).
			Build()
	}

	res := expandDirectory(ref, w.e.pages, w.e.opts, w.e.pattern)
	if len(res.entries) == 0 {
		w.stats.DirectoriesUnmatched++
		w.e.recorder.IncDirectory(metrics.DirectoryUnmatched)
		w.e.logger.Debug("Reference matched no pages, keeping it", logfields.Prefix(ref))
		return res, nil
	}

	w.stats.DirectoriesExpanded++
	w.stats.PageEntries += res.pages
	w.stats.DirectoryEntries += res.dirs
	w.e.recorder.IncDirectory(metrics.DirectoryExpanded)
	w.e.recorder.AddEntries(metrics.EntryPage, res.pages)
	w.e.recorder.AddEntries(metrics.EntryDirectory, res.dirs)
	w.e.logger.Debug("Expanded directory reference",
		logfields.Prefix(ref),
		logfields.Entries(len(res.entries)),
		logfields.Depth(depth))
	return res, nil
}

func kindOf(n *Node) Kind {
	if n == nil {
		return KindOpaque
	}
	return n.Kind
}
