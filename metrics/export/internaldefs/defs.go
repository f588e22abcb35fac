package internaldefs

import (
	"github.com/MrEthical07/cookieless"
)

// CounterDef names one store counter for exporters.
type CounterDef struct {
	ID   cookieless.MetricID
	Name string
	Help string
}

// HistogramDef names one store histogram for exporters.
type HistogramDef struct {
	ID   cookieless.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in render order.
var CounterDefs = []CounterDef{
	{ID: cookieless.MetricFindLoaded, Name: "cookieless_find_loaded_total", Help: "Finds that returned a stored session."},
	{ID: cookieless.MetricFindAnonymous, Name: "cookieless_find_anonymous_total", Help: "Finds on requests without a session identifier."},
	{ID: cookieless.MetricFindMiss, Name: "cookieless_find_miss_total", Help: "Finds whose identifier had no stored session."},
	{ID: cookieless.MetricFindBackendError, Name: "cookieless_find_backend_error_total", Help: "Finds that fell back after a backend failure."},
	{ID: cookieless.MetricFindFormatError, Name: "cookieless_find_format_error_total", Help: "Finds that fell back after a corrupt stored record."},
	{ID: cookieless.MetricWriteSuccess, Name: "cookieless_write_success_total", Help: "Persisted sessions."},
	{ID: cookieless.MetricWriteFailure, Name: "cookieless_write_failure_total", Help: "Session writes that failed."},
	{ID: cookieless.MetricDeleteSuccess, Name: "cookieless_delete_success_total", Help: "Deleted sessions replaced by a new identifier."},
	{ID: cookieless.MetricDeleteDropped, Name: "cookieless_delete_dropped_total", Help: "Deleted sessions dropped without replacement."},
	{ID: cookieless.MetricDeleteFailure, Name: "cookieless_delete_failure_total", Help: "Session deletes that failed at the backend."},
	{ID: cookieless.MetricSessionIDGenerated, Name: "cookieless_session_id_generated_total", Help: "Generated session identifiers."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: cookieless.MetricBackendLatency, Name: "cookieless_backend_latency_seconds", Help: "Backend round-trip latency histogram."},
}

// AuditDroppedName is the counter for audit events lost to backpressure.
const AuditDroppedName = "cookieless_audit_dropped_total"

// AuditDroppedHelp describes AuditDroppedName.
const AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."

// HistogramBounds are the bucket upper bounds in seconds, as rendered text.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramUpperBounds are HistogramBounds without the +Inf bucket.
var HistogramUpperBounds = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

// HistogramBoundSuffix are name-safe forms of HistogramBounds.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates raw to the fixed bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets turns per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
