package config

import (
	"fmt"
	"slices"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
)

// PluginSection finds the expansion plugin in the plugins setting and
// returns its raw options. The host accepts either a list whose entries are
// plugin names or one-key maps, or a map keyed by plugin name.
func (c *Config) PluginSection() (map[string]any, bool, error) {
	switch plugins := c.Plugins.(type) {
	case nil:
		return nil, false, nil
	case []any:
		for _, entry := range plugins {
			switch e := entry.(type) {
			case string:
				if isPluginName(e) {
					return nil, true, nil
				}
			case map[string]any:
				for name, v := range e {
					if isPluginName(name) {
						opts, err := optionMap(name, v)
						return opts, true, err
					}
				}
			}
		}
		return nil, false, nil
	case map[string]any:
		for name, v := range plugins {
			if isPluginName(name) {
				opts, err := optionMap(name, v)
				return opts, true, err
			}
		}
		return nil, false, nil
	default:
		return nil, false, errors.ConfigError("plugins must be a list or a mapping").
			WithContext("type", fmt.Sprintf("%T", c.Plugins)).
			Build()
	}
}

func isPluginName(name string) bool {
	return slices.Contains(PluginNames, name)
}

func optionMap(name string, v any) (map[string]any, error) {
	switch opts := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return opts, nil
	default:
		return nil, errors.ConfigError("plugin options must be a mapping").
			WithContext("plugin", name).
			Build()
	}
}
