package pipeline

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/foundation/normalization"
	"git.home.luguber.info/inful/navexpand/internal/nav"
)

// Format selects how the expanded navigation is rendered.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var formats = normalization.NewNormalizer("output format", map[string]Format{
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"json": FormatJSON,
}, FormatYAML)

// ParseFormat accepts yaml, yml or json in any case. Empty means yaml.
func ParseFormat(s string) (Format, error) {
	return formats.Parse(s)
}

// document is the JSON shape of a rendered navigation, matching the nav key
// of the YAML output.
type document struct {
	Nav *nav.Node `json:"nav"`
}

// Render encodes tree as a top-level nav document in the given format.
func Render(tree *nav.Node, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(document{Nav: tree}, "", "  ")
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "failed to render navigation as JSON").Build()
		}
		return append(out, '\n'), nil
	default:
		value, err := tree.YAMLNode()
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "failed to render navigation as YAML").Build()
		}
		doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "nav"},
			value,
		}}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "failed to render navigation as YAML").Build()
		}
		if err := enc.Close(); err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "failed to render navigation as YAML").Build()
		}
		return buf.Bytes(), nil
	}
}
