package commands

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/navexpand/internal/logfields"
	"git.home.luguber.info/inful/navexpand/internal/metrics"
	"git.home.luguber.info/inful/navexpand/internal/pages"
	"git.home.luguber.info/inful/navexpand/internal/pipeline"
	"git.home.luguber.info/inful/navexpand/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	PageFlags   `embed:""`
	OptionFlags `embed:""`
	OutputFlags `embed:""`

	Debounce time.Duration `help:"Quiet period before re-running after a change" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	if slices.Contains(w.Pages, pages.Stdin) {
		return usageError("watch cannot read a page manifest from stdin")
	}
	req, err := buildRequest(root, g, w.PageFlags, w.OptionFlags, w.OutputFlags)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return w.watch(ctx, g, req)
}

func (w *WatchCmd) watch(ctx context.Context, g *Global, req pipeline.Request) error {
	reg := prometheus.NewRegistry()
	runner := pipeline.New(
		pipeline.WithLogger(g.Logger),
		pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))

	runOnce := func(ctx context.Context) {
		_, err := runner.Run(ctx, req)
		if err != nil {
			g.Logger.Error("Expansion failed", logfields.Error(err))
		}
		if err := flushMetrics(g, reg, w.MetricsFile, nil); err != nil {
			g.Logger.Warn("Failed to write metrics", logfields.Output(w.MetricsFile), logfields.Error(err))
		}
	}

	files := append([]string{req.ConfigPath}, req.Manifests...)
	watcher, err := watch.New(files, func(ctx context.Context, changed []string) {
		g.Logger.Info("Change detected, expanding again", "files", changed)
		runOnce(ctx)
	}, watch.WithDebounce(w.Debounce), watch.WithLogger(g.Logger))
	if err != nil {
		return err
	}

	runOnce(ctx)
	g.Logger.Info("Watching for changes", "files", watcher.Files())
	if err := watcher.Run(ctx); err != nil {
		return err
	}
	g.Logger.Info("Watch stopped")
	return nil
}
