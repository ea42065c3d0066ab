package commands

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/navexpand/internal/logfields"
	"git.home.luguber.info/inful/navexpand/internal/metrics"
	"git.home.luguber.info/inful/navexpand/internal/pipeline"
)

// ExpandCmd implements the 'expand' command.
type ExpandCmd struct {
	PageFlags   `embed:""`
	OptionFlags `embed:""`
	OutputFlags `embed:""`
}

func (e *ExpandCmd) Run(g *Global, root *CLI) error {
	req, err := buildRequest(root, g, e.PageFlags, e.OptionFlags, e.OutputFlags)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	runner := pipeline.New(
		pipeline.WithLogger(g.Logger),
		pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))

	_, err = runner.Run(context.Background(), req)
	return flushMetrics(g, reg, e.MetricsFile, err)
}

// flushMetrics writes the registry when a metrics file was requested. A
// run error takes precedence over a metrics write error.
func flushMetrics(g *Global, reg *prometheus.Registry, path string, runErr error) error {
	if path == "" {
		return runErr
	}
	if err := metrics.WriteTextfile(reg, path); err != nil {
		if runErr != nil {
			g.Logger.Warn("Failed to write metrics", logfields.Output(path), logfields.Error(err))
			return runErr
		}
		return err
	}
	return runErr
}
