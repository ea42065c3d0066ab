package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "navexpand"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	expansionDuration prom.Histogram
	directories       *prom.CounterVec
	entries           *prom.CounterVec
	runs              *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them with reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		expansionDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "expansion_duration_seconds",
			Help:      "Duration of one navigation expansion pass",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}),
		directories: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "directories_total",
			Help:      "Directory references resolved, by result",
		}, []string{"result"}),
		entries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Navigation entries generated, by kind",
		}, []string{"kind"}),
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by final outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.expansionDuration, pr.directories, pr.entries, pr.runs)
	return pr
}

func (p *PrometheusRecorder) ObserveExpansionDuration(d time.Duration) {
	if p == nil || p.expansionDuration == nil {
		return
	}
	p.expansionDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDirectory(result DirectoryResult) {
	if p == nil || p.directories == nil {
		return
	}
	p.directories.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddEntries(kind EntryKind, n int) {
	if p == nil || p.entries == nil || n <= 0 {
		return
	}
	p.entries.WithLabelValues(string(kind)).Add(float64(n))
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	if p == nil || p.runs == nil {
		return
	}
	p.runs.WithLabelValues(string(outcome)).Inc()
}
