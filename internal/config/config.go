package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/nav"
)

// Format is the syntax of a host configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Config is the part of a host site configuration navexpand reads: where the
// docs live, the declared navigation, and the plugin section carrying the
// expansion options.
type Config struct {
	SiteName string    `yaml:"site_name,omitempty"`
	DocsDir  string    `yaml:"docs_dir,omitempty"`
	Nav      *nav.Node `yaml:"nav,omitempty"`
	Plugins  any       `yaml:"plugins,omitempty"`

	// RawNav is the nav as written in the file, before ${VAR} expansion.
	// In-place rewrites expand this tree instead of Nav.
	RawNav *nav.Node `yaml:"-"`

	// Path and Format record where the configuration was loaded from.
	Path   string `yaml:"-"`
	Format Format `yaml:"-"`
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv replaces ${VAR} references with the value of the environment
// variable. Bare $NAME, $1 and other dollar text are left as written.
func ExpandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envRef.FindStringSubmatch(m)[1])
	})
}

// tomlConfig mirrors Config for TOML input, where nav arrives as generic values.
type tomlConfig struct {
	SiteName string `toml:"site_name"`
	DocsDir  string `toml:"docs_dir"`
	Nav      any    `toml:"nav"`
	Plugins  any    `toml:"plugins"`
}

// FormatFor picks the configuration syntax from the file extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads the configuration file at path. Environment files next to it
// are loaded first and ${VAR} references are expanded before parsing.
func Load(path string) (*Config, error) {
	if err := LoadEnvFiles(filepath.Dir(path)); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	format := FormatFor(path)
	expanded := ExpandEnv(string(data))
	cfg, err := Parse([]byte(expanded), format)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.RawNav = cfg.Nav
	if expanded != string(data) {
		raw, err := Parse(data, format)
		if err != nil {
			return nil, err
		}
		cfg.RawNav = raw.Nav
	}
	return cfg, nil
}

// Parse decodes configuration bytes in the given format and applies defaults.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := &Config{Format: format}
	switch format {
	case FormatTOML:
		var raw tomlConfig
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse TOML config").Build()
		}
		tree, err := nav.FromValue(raw.Nav)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid nav").Build()
		}
		cfg.SiteName, cfg.DocsDir, cfg.Nav, cfg.Plugins = raw.SiteName, raw.DocsDir, tree, raw.Plugins
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse YAML config").Build()
		}
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Options resolves the expansion options: defaults, then the plugin section
// of the file, then NAVEXPAND_* environment variables. Command-line
// overrides are merged by the caller on top of the result.
func (c *Config) Options() (PluginOptions, error) {
	opts := DefaultPluginOptions()
	raw, _, err := c.PluginSection()
	if err != nil {
		return opts, err
	}
	if err := opts.Merge(raw); err != nil {
		return opts, err
	}
	env, err := LoadEnvOverrides()
	if err != nil {
		return opts, err
	}
	env.ApplyTo(&opts)
	return opts, nil
}
