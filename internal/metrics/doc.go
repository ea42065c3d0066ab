// Package metrics provides observability hooks for navigation expansion runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	expander, err := nav.NewExpander(pages, opts, nav.WithRecorder(recorder))
//
// The CLI gathers the registry and writes it in the Prometheus text format
// (see WriteTextfile) so node_exporter's textfile collector can pick it up.
package metrics
