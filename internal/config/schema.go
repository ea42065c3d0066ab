package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema returns an indented JSON Schema describing the plugin
// options as they appear in the configuration file.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		DoNotReference:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(&PluginOptions{})
	schema.Title = "include_dir_to_nav options"
	schema.Description = "Options for expanding directory references in the site navigation."
	return json.MarshalIndent(schema, "", "  ")
}
