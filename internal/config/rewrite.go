package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/nav"
)

// ReplaceNav returns data with the value of its top-level nav key replaced by
// tree. The rest of the document, comments included, is kept. A document
// without a nav key gets one appended.
func ReplaceNav(data []byte, tree *nav.Node) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse YAML config").Build()
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.ValidationError("configuration root must be a mapping").
			WithContext("line", root.Line).
			Build()
	}

	value, err := tree.YAMLNode()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to encode navigation").Build()
	}

	replaced := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "nav" {
			value.HeadComment = root.Content[i+1].HeadComment
			value.LineComment = root.Content[i+1].LineComment
			root.Content[i+1] = value
			replaced = true
			break
		}
	}
	if !replaced {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "nav"},
			value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to encode configuration").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to encode configuration").Build()
	}
	return buf.Bytes(), nil
}
