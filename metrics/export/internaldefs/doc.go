// Package internaldefs holds the metric names, help strings, and bucket bounds
// shared by every exporter, so the text, OpenTelemetry, and client_golang
// exporters publish identical series.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs
