// Package otel publishes store metrics through an OpenTelemetry metric.Meter.
//
// Counters become Int64ObservableCounters with the same names as the
// Prometheus exporter. The latency histogram is published as a
// "<name>_bucket" gauge with an "le" attribute per bound plus a "<name>_count"
// gauge, because the snapshot already holds bucketed data.
//
// # What this package must NOT do
//
//   - Install a global MeterProvider.
//   - Mutate store state.
package otel
