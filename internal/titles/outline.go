package titles

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/navexpand/internal/nav"
)

// TitleFunc resolves the display title of an untitled page reference.
type TitleFunc func(path string) string

// WriteOutline prints tree as an indented list. Untitled references get a
// title from title; titled ones keep theirs. Each reference is followed by
// its path in parentheses.
func WriteOutline(w io.Writer, tree *nav.Node, title TitleFunc) error {
	ow := &outlineWriter{w: w, title: title}
	ow.node(tree, 0)
	return ow.err
}

type outlineWriter struct {
	w     io.Writer
	title TitleFunc
	err   error
}

func (o *outlineWriter) line(depth int, format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, strings.Repeat("  ", depth)+"- "+format+"\n", args...)
}

func (o *outlineWriter) node(n *nav.Node, depth int) {
	if n == nil {
		return
	}
	switch n.Kind {
	case nav.KindRef:
		o.line(depth, "%s (%s)", o.title(n.Ref), n.Ref)
	case nav.KindSection:
		for _, it := range n.Items {
			o.item(it, depth)
		}
	case nav.KindGroup:
		for _, c := range n.Children {
			o.node(c, depth)
		}
	default:
		o.line(depth, "%v", n.Value)
	}
}

func (o *outlineWriter) item(it nav.Item, depth int) {
	switch {
	case it.Node == nil:
		o.line(depth, "%s", it.Title)
	case it.Node.Kind == nav.KindRef:
		o.line(depth, "%s (%s)", it.Title, it.Node.Ref)
	case it.Node.Kind == nav.KindOpaque:
		o.line(depth, "%s: %v", it.Title, it.Node.Value)
	default:
		o.line(depth, "%s", it.Title)
		o.node(it.Node, depth+1)
	}
}
