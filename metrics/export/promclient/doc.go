// Package promclient exposes store metrics as a prometheus.Collector for
// github.com/prometheus/client_golang registries.
//
// Series names match the text exporter in metrics/export/prometheus, so the
// two are interchangeable behind a scrape job.
//
// # What this package must NOT do
//
//   - Register with prometheus.DefaultRegisterer; callers choose the registry.
//   - Mutate store state.
package promclient
