package cookieless

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MrEthical07/cookieless/internal"
	"github.com/MrEthical07/cookieless/internal/audit"
	"github.com/google/uuid"
)

// AuditEvent is a single store lifecycle event. Session carries the
// identifier fingerprint, never the raw identifier.
type AuditEvent = audit.Event

// AuditSink receives audit events from the store's dispatcher goroutine.
type AuditSink = audit.Sink

// NoOpSink discards every event.
type NoOpSink = audit.NoOpSink

// ChannelSink forwards events into a buffered channel.
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes one JSON object per event line.
type JSONWriterSink = audit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] writing to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

const (
	auditSessionLoadFailed   = "session_load_failed"
	auditSessionWriteFailed  = "session_write_failed"
	auditSessionDeleted      = "session_deleted"
	auditSessionDeleteFailed = "session_delete_failed"
)

func (s *Store) emitAudit(ctx context.Context, r *http.Request, eventType, sessionID string, success bool, err error, metadata map[string]string) {
	if s.audit == nil {
		return
	}

	ev := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Session:   internal.Fingerprint(sessionID),
		Success:   success,
		Metadata:  metadata,
	}
	if r != nil {
		ev.Method = r.Method
		if r.URL != nil {
			ev.Path = r.URL.Path
		}
		ev.IP = clientIP(r)
	}
	if err != nil {
		ev.Error = err.Error()
	}

	s.audit.Emit(ctx, ev)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
