package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/MrEthical07/cookieless"
)

type sessionContextKey struct{}

// FromContext returns the request session installed by [Sessions], or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}

// CommitFunc observes the end-of-request commit of a session the handler used.
// id is the identifier the session ended under. written is false for dropped
// sessions and for failed writes, which the store has already reported to its
// resolver.
type CommitFunc func(r *http.Request, id string, written bool)

type options struct {
	expireAfter    time.Duration
	hasExpireAfter bool
	onCommit       CommitFunc
}

// Option configures [Sessions].
type Option func(*options)

// WithExpireAfter overrides the store's default entry TTL.
func WithExpireAfter(d time.Duration) Option {
	return func(o *options) {
		o.expireAfter = d
		o.hasExpireAfter = true
	}
}

// OnCommit registers fn to run after each commit attempt.
func OnCommit(fn CommitFunc) Option {
	return func(o *options) {
		o.onCommit = fn
	}
}

// Sessions attaches a lazily loaded [Session] to every request and commits it
// after the wrapped handler returns. It never reads or writes cookies.
func Sessions(store *cookieless.Store, opts ...Option) func(http.Handler) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				http.Error(w, "session store unavailable", http.StatusInternalServerError)
				return
			}

			ttl := store.ExpireAfter()
			if o.hasExpireAfter {
				ttl = o.expireAfter
			}

			sess := newSession(store, nil, ttl)
			r = r.WithContext(context.WithValue(r.Context(), sessionContextKey{}, sess))
			sess.req = r

			next.ServeHTTP(w, r)

			id, written, touched := sess.commit()
			if o.onCommit != nil && touched {
				o.onCommit(r, id, written)
			}
		})
	}
}
