package config

import (
	"os"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
)

const exampleConfig = `site_name: My Docs
docs_dir: docs

nav:
  - Home: index.md
  # Directory references are expanded into the pages they contain.
  - guide
  - Reference: reference/

plugins:
  - include_dir_to_nav:
      flat: false
      file_pattern: '.*\.md$'
      file_name_as_title: true
      recurse: true
      reverse_sort_directory: false
      strict_prefix: false
`

// ExampleConfig returns the configuration written by Init.
func ExampleConfig() string { return exampleConfig }

// Init writes an example configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists").
			WithContext("path", path).
			WithContext("hint", "use --force to overwrite").
			Build()
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write configuration").
			WithContext("path", path).
			Build()
	}
	return nil
}
