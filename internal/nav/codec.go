package nav

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

const strTag = "!!str"

// UnmarshalYAML decodes a navigation node, preserving the key order of
// mappings so multi-key sections stay deterministic.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := fromYAML(value)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// MarshalYAML encodes the node as a yaml.Node tree.
func (n *Node) MarshalYAML() (any, error) {
	return n.YAMLNode()
}

// ParseYAML decodes a navigation tree from YAML (or JSON, which YAML accepts).
// Empty input yields a nil tree.
func ParseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse navigation: %w", err)
	}
	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return nil, nil
	}
	return fromYAML(&doc)
}

func fromYAML(value *yaml.Node) (*Node, error) {
	switch value.Kind {
	case yaml.DocumentNode:
		if len(value.Content) == 0 {
			return Opaque(nil), nil
		}
		return fromYAML(value.Content[0])
	case yaml.AliasNode:
		if value.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", value.Line)
		}
		return fromYAML(value.Alias)
	case yaml.ScalarNode:
		if value.ShortTag() == strTag {
			return Ref(value.Value), nil
		}
		var v any
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", value.Line, err)
		}
		return Opaque(v), nil
	case yaml.SequenceNode:
		children := make([]*Node, 0, len(value.Content))
		for _, c := range value.Content {
			child, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return Group(children...), nil
	case yaml.MappingNode:
		items := make([]Item, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i]
			if key.Kind == yaml.AliasNode && key.Alias != nil {
				key = key.Alias
			}
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: navigation titles must be scalars", key.Line)
			}
			child, err := fromYAML(value.Content[i+1])
			if err != nil {
				return nil, err
			}
			items = append(items, Item{Title: key.Value, Node: child})
		}
		return Section(items...), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", value.Line, value.Kind)
	}
}

// YAMLNode converts the tree into a yaml.Node, the form used to splice a
// rewritten nav back into a host configuration document.
func (n *Node) YAMLNode() (*yaml.Node, error) {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	switch n.Kind {
	case KindRef:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: n.Ref}, nil
	case KindSection:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, it := range n.Items {
			child, err := it.Node.YAMLNode()
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: it.Title},
				child)
		}
		return out, nil
	case KindGroup:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, c := range n.Children {
			child, err := c.YAMLNode()
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, child)
		}
		return out, nil
	default:
		out := &yaml.Node{}
		if err := out.Encode(n.Value); err != nil {
			return nil, fmt.Errorf("encode %v: %w", n.Value, err)
		}
		return out, nil
	}
}

// MarshalJSON writes sections as JSON objects in item order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	switch n.Kind {
	case KindRef:
		return json.Marshal(n.Ref)
	case KindSection:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, it := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(it.Title)
			if err != nil {
				return nil, err
			}
			val, err := it.Node.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case KindGroup:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, c := range n.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			val, err := c.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return json.Marshal(n.Value)
	}
}

// UnmarshalJSON decodes through the YAML decoder so object key order survives.
func (n *Node) UnmarshalJSON(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	decoded, err := fromYAML(&doc)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// FromValue converts a generic decoded structure (strings, maps, slices) into
// a tree. Go maps carry no order, so multi-key maps become sections sorted by
// title.
func FromValue(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case *Node:
		return t.Clone(), nil
	case string:
		return Ref(t), nil
	case []any:
		children := make([]*Node, 0, len(t))
		for _, c := range t {
			child, err := FromValue(c)
			if err != nil {
				return nil, err
			}
			if child == nil {
				child = Opaque(nil)
			}
			children = append(children, child)
		}
		return Group(children...), nil
	case []string:
		children := make([]*Node, 0, len(t))
		for _, s := range t {
			children = append(children, Ref(s))
		}
		return Group(children...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]Item, 0, len(keys))
		for _, k := range keys {
			child, err := FromValue(t[k])
			if err != nil {
				return nil, err
			}
			if child == nil {
				child = Opaque(nil)
			}
			items = append(items, Item{Title: k, Node: child})
		}
		return Section(items...), nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = val
		}
		return FromValue(m)
	case bool, int, int64, uint64, float64:
		return Opaque(t), nil
	default:
		return nil, fmt.Errorf("unsupported navigation value of type %T", v)
	}
}

// ToValue converts the tree back into generic strings, maps and slices.
func (n *Node) ToValue() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindRef:
		return n.Ref
	case KindSection:
		m := make(map[string]any, len(n.Items))
		for _, it := range n.Items {
			m[it.Title] = it.Node.ToValue()
		}
		return m
	case KindGroup:
		out := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			out = append(out, c.ToValue())
		}
		return out
	default:
		return n.Value
	}
}

// String renders the tree as flow-style YAML for log lines.
func (n *Node) String() string {
	node, err := n.YAMLNode()
	if err != nil {
		return fmt.Sprintf("<invalid nav: %v>", err)
	}
	setFlow(node)
	out, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Sprintf("<invalid nav: %v>", err)
	}
	return string(bytes.TrimSpace(out))
}

func setFlow(n *yaml.Node) {
	n.Style |= yaml.FlowStyle
	for _, c := range n.Content {
		setFlow(c)
	}
}
