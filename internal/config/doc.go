// Package config loads the host site configuration: the declared navigation
// and the include_dir_to_nav plugin options, layered with NAVEXPAND_*
// environment overrides. It also writes the expanded navigation back into
// the configuration document.
package config
