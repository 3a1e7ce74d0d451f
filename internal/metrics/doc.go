// Package metrics provides the observability hooks of sitegraph.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	selector := sitemap.New(store, settings, sitemap.WithRecorder(recorder))
//
// When monitoring.metrics.enabled is set the server wires a PrometheusRecorder backed by
// a private registry and exposes it through HTTPHandler.
package metrics
