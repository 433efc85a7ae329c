// Package metrics provides run metrics for the icon cache generator.
//
// Components receive a Recorder and default to NoopRecorder, so collection
// costs nothing unless enabled:
//
//	builder := iconindex.NewBuilder(form) // NoopRecorder
//	rec := metrics.NewPrometheusRecorder(nil)
//	builder = iconindex.NewBuilder(form, iconindex.WithRecorder(rec))
//
// A one-shot CLI has no scrape endpoint, so the Prometheus implementation
// writes its registry to a node_exporter textfile-collector file at the end
// of the run (see PrometheusRecorder.WriteTextfile).
package metrics
