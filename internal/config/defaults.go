package config

// DefaultDocsDir matches the host's default documentation root.
const DefaultDocsDir = "docs"

func applyDefaults(cfg *Config) {
	if cfg.DocsDir == "" {
		cfg.DocsDir = DefaultDocsDir
	}
}
