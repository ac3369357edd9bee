// Package prometheus provides Prometheus collectors for vetcare metrics.
//
// [NewPrometheusExporter] accepts a [vetcare.Client] and exposes an [http.Handler]
// that renders all vetcare counters and histograms in Prometheus text exposition format.
// Counter names are prefixed vetcare_*_total; the single histogram is
// vetcare_navigate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
