package nav

import "fmt"

// Kind identifies which variant a Node holds.
type Kind int

const (
	// KindRef is a bare string: a page path or a directory prefix.
	KindRef Kind = iota
	// KindSection maps display titles to child nodes.
	KindSection
	// KindGroup is an ordered list of nodes.
	KindGroup
	// KindOpaque is any other scalar (number, bool, null).
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindRef:
		return "ref"
	case KindSection:
		return "section"
	case KindGroup:
		return "group"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one element of a navigation tree. Only the field matching Kind is
// meaningful.
type Node struct {
	Kind     Kind
	Ref      string
	Items    []Item
	Children []*Node
	Value    any
}

// Item is one title/value pair of a section. Sections normally hold exactly
// one item; extra items are kept in document order.
type Item struct {
	Title string
	Node  *Node
}

// Ref returns a leaf reference node.
func Ref(path string) *Node {
	return &Node{Kind: KindRef, Ref: path}
}

// Titled returns a single-item section.
func Titled(title string, child *Node) *Node {
	return &Node{Kind: KindSection, Items: []Item{{Title: title, Node: child}}}
}

// Section returns a section with the given items in order.
func Section(items ...Item) *Node {
	return &Node{Kind: KindSection, Items: items}
}

// Group returns an ordered group. A nil children list yields an empty group.
func Group(children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Kind: KindGroup, Children: children}
}

// Opaque wraps a scalar value that is not a string.
func Opaque(v any) *Node {
	return &Node{Kind: KindOpaque, Value: v}
}

// Clone returns a deep copy of n. Opaque values are scalars and are copied
// by assignment.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Ref: n.Ref, Value: n.Value}
	if n.Items != nil {
		out.Items = make([]Item, len(n.Items))
		for i, it := range n.Items {
			out.Items[i] = Item{Title: it.Title, Node: it.Node.Clone()}
		}
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Walk visits n and its descendants depth-first in document order. The
// callback receives each node together with the title it sits under
// ("" for untitled positions) and its nesting depth.
func (n *Node) Walk(fn func(node *Node, title string, depth int)) {
	n.walk(fn, "", 0)
}

func (n *Node) walk(fn func(*Node, string, int), title string, depth int) {
	if n == nil {
		return
	}
	fn(n, title, depth)
	switch n.Kind {
	case KindSection:
		for _, it := range n.Items {
			it.Node.walk(fn, it.Title, depth+1)
		}
	case KindGroup:
		for _, c := range n.Children {
			c.walk(fn, "", depth+1)
		}
	}
}

// Refs returns every leaf reference in document order.
func (n *Node) Refs() []string {
	var out []string
	n.Walk(func(node *Node, _ string, _ int) {
		if node.Kind == KindRef {
			out = append(out, node.Ref)
		}
	})
	return out
}
