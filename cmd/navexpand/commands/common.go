package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/navexpand/internal/config"
	"git.home.luguber.info/inful/navexpand/internal/foundation/normalization"
	"git.home.luguber.info/inful/navexpand/internal/logfields"
)

// Global carries process-wide state handed to every command.
type Global struct {
	Logger *slog.Logger
	RunID  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file (YAML or TOML)" default:"mkdocs.yml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Expand ExpandCmd `cmd:"" help:"Expand directory references in the site navigation"`
	Tree   TreeCmd   `cmd:"" help:"Print the expanded navigation as an outline with page titles"`
	Watch  WatchCmd  `cmd:"" help:"Re-expand whenever the configuration or a page manifest changes"`
	Schema SchemaCmd `cmd:"" help:"Print the JSON Schema of the plugin options"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

var logLevels = normalization.NewNormalizer("log level", map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	if err := config.LoadEnvFiles(filepath.Dir(c.Config)); err != nil {
		return err
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	if raw := os.Getenv(config.EnvPrefix + "_LOG_LEVEL"); raw != "" {
		parsed, err := logLevels.Parse(raw)
		if err != nil {
			return err
		}
		level = parsed
	}

	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}
	g.RunID = uuid.NewString()
	g.Logger = slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: level})).
		With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
	return nil
}

func (g *Global) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}
