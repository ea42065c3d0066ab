package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/nav"
)

// PluginNames are the names the expansion plugin is registered under.
var PluginNames = []string{"include_dir_to_nav", "include-dir-to-nav"}

// PluginOptions is the option bundle as written in the plugin section.
type PluginOptions struct {
	Flat                 bool   `yaml:"flat" json:"flat" jsonschema:"description=List every page below a directory at that directory's level,default=false"`
	FilePattern          string `yaml:"file_pattern" json:"file_pattern" jsonschema:"description=Regular expression matched against the start of each file name,default=.*\\.md$"`
	FileNameAsTitle      bool   `yaml:"file_name_as_title" json:"file_name_as_title" jsonschema:"description=Emit bare page paths instead of entries titled by their parent directory,default=true"`
	Recurse              bool   `yaml:"recurse" json:"recurse" jsonschema:"description=Emit one entry per sub-directory and expand it in turn,default=true"`
	ReverseSortDirectory bool   `yaml:"reverse_sort_directory" json:"reverse_sort_directory" jsonschema:"description=Sort the entries of each directory in descending order,default=false"`
	StrictPrefix         bool   `yaml:"strict_prefix" json:"strict_prefix" jsonschema:"description=Only select pages below the directory followed by a slash,default=false"`
	NormalizeUnicode     bool   `yaml:"normalize_unicode" json:"normalize_unicode" jsonschema:"description=NFC-normalize page paths and navigation references,default=false"`
}

// DefaultPluginOptions returns the documented defaults.
func DefaultPluginOptions() PluginOptions {
	return PluginOptions{
		FilePattern:     nav.DefaultFilePattern,
		FileNameAsTitle: true,
		Recurse:         true,
	}
}

// Merge overlays the keys present in raw onto o. Values are weakly typed, so
// "true" and "1" are accepted for booleans; unknown keys are rejected.
func (o *PluginOptions) Merge(raw map[string]any) error {
	if len(raw) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           o,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid plugin options").Build()
	}
	return nil
}

// MergeAssignments overlays "key=value" pairs, as given on the command line.
// Dashes in keys are accepted in place of underscores.
func (o *PluginOptions) MergeAssignments(pairs map[string]string) error {
	raw := make(map[string]any, len(pairs))
	for k, v := range pairs {
		raw[strings.ReplaceAll(strings.TrimSpace(k), "-", "_")] = v
	}
	return o.Merge(raw)
}

// Validate checks that the options can drive an expansion.
func (o PluginOptions) Validate() error {
	_, err := o.NavOptions().CompilePattern()
	return err
}

// NavOptions converts the plugin options into expander options.
func (o PluginOptions) NavOptions() nav.Options {
	return nav.Options{
		Flat:                 o.Flat,
		FilePattern:          o.FilePattern,
		FileNameAsTitle:      o.FileNameAsTitle,
		Recurse:              o.Recurse,
		ReverseSortDirectory: o.ReverseSortDirectory,
		StrictPrefix:         o.StrictPrefix,
	}
}
