package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/navexpand/internal/config"
	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/logfields"
	"git.home.luguber.info/inful/navexpand/internal/metrics"
	"git.home.luguber.info/inful/navexpand/internal/nav"
	"git.home.luguber.info/inful/navexpand/internal/pages"
)

// Request describes one run.
type Request struct {
	// ConfigPath is the host configuration file.
	ConfigPath string
	// Manifests and Pages supply the page set; see pages.Source.
	Manifests []string
	Pages     []string
	// Stdin backs the "-" manifest. Nil means os.Stdin.
	Stdin io.Reader
	// Overrides are key=value option assignments with the highest precedence.
	Overrides map[string]string

	Format Format
	// Output is a file path; empty or "-" writes to Stdout.
	Output string
	// InPlace rewrites the nav of ConfigPath instead of writing Output.
	InPlace bool
	// Stdout receives the rendered navigation. Nil means os.Stdout.
	Stdout io.Writer
}

// Result reports what a run produced.
type Result struct {
	Config      *config.Config
	Options     config.PluginOptions
	Pages       int
	Tree        *nav.Node
	Stats       nav.Stats
	Rendered    []byte
	Fingerprint string
	// Destination is the file written, empty for stdout.
	Destination string
	// Unchanged is set when an in-place rewrite was skipped because the
	// document would not change.
	Unchanged bool
	Duration  time.Duration
}

// Runner executes requests. It is safe to reuse across runs.
type Runner struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger handed to every stage.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// New returns a Runner that logs nowhere and records nothing unless
// configured otherwise.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:   slog.New(slog.DiscardHandler),
		recorder: metrics.NoopRecorder{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes req once.
func (r *Runner) Run(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		if err != nil {
			r.recorder.IncRunOutcome(metrics.OutcomeFailed)
			return
		}
		r.recorder.IncRunOutcome(metrics.OutcomeSuccess)
	}()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	res, err = r.prepare(req)
	if err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	log := r.logger.With(logfields.ConfigFile(req.ConfigPath))
	if err := r.write(req, &res); err != nil {
		return res, err
	}

	log.Info("Navigation expanded",
		logfields.Pages(res.Pages),
		slog.Int("directories", res.Stats.DirectoriesExpanded),
		slog.Int("unmatched", res.Stats.DirectoriesUnmatched),
		logfields.Entries(res.Stats.PageEntries+res.Stats.DirectoryEntries),
		logfields.Output(describeDestination(res)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return res, nil
}

// Expand loads and expands without rendering or writing anything.
func (r *Runner) Expand(req Request) (Result, error) {
	return r.prepare(req)
}

func (r *Runner) prepare(req Request) (Result, error) {
	var res Result
	log := r.logger.With(logfields.ConfigFile(req.ConfigPath))

	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		return res, err
	}
	res.Config = cfg

	opts, err := cfg.Options()
	if err != nil {
		return res, err
	}
	if err := opts.MergeAssignments(req.Overrides); err != nil {
		return res, err
	}
	if err := opts.Validate(); err != nil {
		return res, err
	}
	res.Options = opts

	if len(req.Manifests) == 0 && len(req.Pages) == 0 {
		log.Warn("No page set supplied; every reference is treated as an unmatched directory")
	}
	set, err := pages.Load(pages.Source{
		Manifests:        req.Manifests,
		Paths:            req.Pages,
		Input:            req.Stdin,
		NormalizeUnicode: opts.NormalizeUnicode,
	})
	if err != nil {
		return res, err
	}
	res.Pages = set.Len()
	log.Debug("Loaded page set", logfields.Pages(set.Len()))

	tree := cfg.Nav
	if req.InPlace {
		tree = cfg.RawNav
	}
	if opts.NormalizeUnicode {
		tree = pages.NormalizeRefs(tree)
	}

	expander, err := nav.NewExpander(set, opts.NavOptions(),
		nav.WithLogger(r.logger),
		nav.WithRecorder(r.recorder))
	if err != nil {
		return res, err
	}
	res.Tree, res.Stats, err = expander.Expand(tree)
	if err != nil {
		return res, err
	}
	return res, nil
}

func (r *Runner) write(req Request, res *Result) error {
	if req.InPlace {
		return r.rewriteInPlace(req, res)
	}

	rendered, err := Render(res.Tree, req.Format)
	if err != nil {
		return err
	}
	res.Rendered = rendered
	res.Fingerprint = Fingerprint(rendered)

	if req.Output == "" || req.Output == "-" {
		out := req.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(rendered); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write navigation").Build()
		}
		return nil
	}

	if err := writeFileAtomic(req.Output, rendered); err != nil {
		return err
	}
	res.Destination = req.Output
	return nil
}

func (r *Runner) rewriteInPlace(req Request, res *Result) error {
	if res.Config.Format != config.FormatYAML {
		return errors.ValidationError("in-place rewrite requires a YAML configuration").
			WithContext("path", req.ConfigPath).
			Build()
	}

	// Only the nav node is replaced; ${VAR} text elsewhere stays as written.
	current, err := os.ReadFile(req.ConfigPath)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", req.ConfigPath).
			Build()
	}
	updated, err := config.ReplaceNav(current, res.Tree)
	if err != nil {
		return err
	}
	res.Rendered = updated
	res.Fingerprint = Fingerprint(updated)
	res.Destination = req.ConfigPath

	if res.Fingerprint == Fingerprint(current) {
		res.Unchanged = true
		r.logger.Debug("Configuration already up to date", logfields.ConfigFile(req.ConfigPath))
		return nil
	}
	return writeFileAtomic(req.ConfigPath, updated)
}

func describeDestination(res Result) string {
	switch {
	case res.Destination == "":
		return "stdout"
	case res.Unchanged:
		return res.Destination + " (unchanged)"
	default:
		return res.Destination
	}
}
