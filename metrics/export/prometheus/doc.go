// Package prometheus renders store metrics in the Prometheus text exposition
// format without depending on client_golang.
//
// [NewPrometheusExporter] reads a [cookieless.Store] and its Handler serves
// every cookieless_*_total counter plus the
// cookieless_backend_latency_seconds histogram. For registration in a
// client_golang registry use the promclient package instead.
//
// # What this package must NOT do
//
//   - Register metrics in a global registry; callers mount the Handler.
//   - Mutate store state.
package prometheus
