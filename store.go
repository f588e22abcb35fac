package cookieless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/MrEthical07/cookieless/internal"
	"github.com/MrEthical07/cookieless/internal/audit"
	"github.com/MrEthical07/cookieless/session"
	"github.com/redis/go-redis/v9"
)

// ErrEmptySessionID is reported to the resolver when WriteSession is called
// without an identifier.
var ErrEmptySessionID = errors.New("session id is empty")

// Store is a cookie-independent session store. It locates the session of a
// request through its [Extractor], keeps records in the backend as JSON, and
// never lets a backend failure escape a find or delete: the [ErrorResolver]
// is told, and the request continues with a fresh anonymous session.
//
// A Store is safe for concurrent use by all requests of a server. It holds no
// per-request state and never caches records.
type Store struct {
	config Config

	backend Backend
	owned   io.Closer

	extractor Extractor
	resolver  ErrorResolver
	random    io.Reader

	metrics *Metrics
	audit   *audit.Dispatcher
}

// backendContext keeps request values but detaches cancellation, so a client
// disconnect cannot abort a commit midway. Deadlines come from the client.
func backendContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return context.WithoutCancel(r.Context())
}

/*
====================================
FIND
====================================
*/

// FindSession returns the identifier and record of the request's session.
// The identifier is re-extracted from r on every call.
//
// A request without an identifier, an unknown identifier, or a stored JSON null
// all yield a fresh identifier and an empty record without involving the
// resolver. A backend or decode failure is passed to the resolver once, then
// handled the same way. The returned identifier is never empty.
//
//	Performance: at most 1 backend GET.
func (s *Store) FindSession(r *http.Request) (string, Record) {
	id, ok := s.extractor.Extract(r)
	if !ok || id == "" {
		s.metrics.Inc(MetricFindAnonymous)
		return s.NewSessionID(), Record{}
	}

	ctx := backendContext(r)

	start := time.Now()
	data, err := s.backend.Get(ctx, id)
	s.metrics.Observe(MetricBackendLatency, time.Since(start))
	if err != nil {
		if isMiss(err) {
			s.metrics.Inc(MetricFindMiss)
			return s.NewSessionID(), Record{}
		}
		return s.findFailed(ctx, r, id, err)
	}

	rec, err := session.Decode(data)
	if err != nil {
		return s.findFailed(ctx, r, id, err)
	}
	if rec == nil {
		s.metrics.Inc(MetricFindMiss)
		return s.NewSessionID(), Record{}
	}

	s.metrics.Inc(MetricFindLoaded)
	return id, rec
}

func (s *Store) findFailed(ctx context.Context, r *http.Request, id string, cause error) (string, Record) {
	failure := classify(OpFind, cause)
	if failure.Kind == FailureFormat {
		s.metrics.Inc(MetricFindFormatError)
	} else {
		s.metrics.Inc(MetricFindBackendError)
	}

	s.resolver.ResolveError(failure, r, id, nil)
	s.emitAudit(ctx, r, auditSessionLoadFailed, id, false, failure, map[string]string{
		"kind": failure.Kind.String(),
	})

	return s.NewSessionID(), Record{}
}

func isMiss(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, redis.Nil)
}

/*
====================================
WRITE
====================================
*/

// WriteSession persists rec under id with opts.ExpireAfter as TTL. On success
// it returns id itself: identifiers are never rotated on write. On failure the
// resolver receives the error and the record, and WriteSession returns
// ("", false).
//
//	Performance: 1 backend SET.
func (s *Store) WriteSession(r *http.Request, id string, rec Record, opts WriteOptions) (string, bool) {
	ctx := backendContext(r)

	if id == "" {
		return s.writeFailed(ctx, r, id, rec, &BackendFailure{Op: OpWrite, Kind: FailureFormat, Cause: ErrEmptySessionID})
	}

	data, err := session.Encode(rec)
	if err != nil {
		return s.writeFailed(ctx, r, id, rec, &BackendFailure{Op: OpWrite, Kind: FailureFormat, Cause: err})
	}

	start := time.Now()
	err = s.backend.Set(ctx, id, data, opts.ExpireAfter)
	s.metrics.Observe(MetricBackendLatency, time.Since(start))
	if err != nil {
		return s.writeFailed(ctx, r, id, rec, classify(OpWrite, err))
	}

	s.metrics.Inc(MetricWriteSuccess)
	return id, true
}

func (s *Store) writeFailed(ctx context.Context, r *http.Request, id string, rec Record, failure *BackendFailure) (string, bool) {
	s.metrics.Inc(MetricWriteFailure)
	s.resolver.ResolveError(failure, r, id, rec)
	s.emitAudit(ctx, r, auditSessionWriteFailed, id, false, failure, map[string]string{
		"kind": failure.Kind.String(),
	})
	return "", false
}

/*
====================================
DELETE
====================================
*/

// DeleteSession removes the entry for id. Deleting a missing entry succeeds.
// With opts.Drop it returns "" so no replacement session is tracked; otherwise
// it returns a fresh identifier.
//
// A backend failure is passed to the resolver and a fresh identifier is
// returned whether or not Drop was requested.
//
//	Performance: 1 backend DEL.
func (s *Store) DeleteSession(r *http.Request, id string, opts DeleteOptions) string {
	ctx := backendContext(r)

	if id != "" {
		start := time.Now()
		err := s.backend.Del(ctx, id)
		s.metrics.Observe(MetricBackendLatency, time.Since(start))
		if err != nil {
			failure := classify(OpDelete, err)
			s.metrics.Inc(MetricDeleteFailure)
			s.resolver.ResolveError(failure, r, id, nil)
			s.emitAudit(ctx, r, auditSessionDeleteFailed, id, false, failure, nil)
			return s.NewSessionID()
		}
	}

	s.emitAudit(ctx, r, auditSessionDeleted, id, true, nil, map[string]string{
		"drop": strconv.FormatBool(opts.Drop),
	})

	if opts.Drop {
		s.metrics.Inc(MetricDeleteDropped)
		return ""
	}
	s.metrics.Inc(MetricDeleteSuccess)
	return s.NewSessionID()
}

/*
====================================
IDENTIFIERS & INTROSPECTION
====================================
*/

// NewSessionID returns a fresh 22-character URL-safe identifier drawn from the
// configured entropy source, or from crypto/rand if that source fails.
func (s *Store) NewSessionID() string {
	id, err := internal.NewSessionID(s.random)
	if err != nil && s.random != nil {
		id, err = internal.NewSessionID(nil)
	}
	if err != nil {
		panic(fmt.Sprintf("cookieless: system entropy unavailable: %v", err))
	}
	s.metrics.Inc(MetricSessionIDGenerated)
	return id
}

// RequestSessionID runs the configured extractor on r. It does not touch the
// backend.
func (s *Store) RequestSessionID(r *http.Request) (string, bool) {
	id, ok := s.extractor.Extract(r)
	return id, ok && id != ""
}

// Policy reports the fixed session behavior of the store.
func (s *Store) Policy() Policy {
	return forcedPolicy
}

// ExpireAfter is the configured default entry TTL.
func (s *Store) ExpireAfter() time.Duration {
	return s.config.Session.ExpireAfter
}

// MetricsSnapshot copies the current counters and histograms.
func (s *Store) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped on a full buffer.
func (s *Store) AuditDropped() uint64 {
	return s.audit.Dropped()
}

// EstimateSessions counts stored sessions. It needs the built-in Redis backend
// and a key prefix, and it scans the keyspace: keep it off request paths.
func (s *Store) EstimateSessions(ctx context.Context) (int, error) {
	rs, ok := s.backend.(*session.Store)
	if !ok {
		return 0, errors.New("estimate sessions requires the redis backend")
	}
	return rs.EstimateSessions(ctx)
}

// Close flushes pending audit events and closes the Redis client if the store
// created it.
func (s *Store) Close() error {
	s.audit.Close()
	if s.owned != nil {
		return s.owned.Close()
	}
	return nil
}
