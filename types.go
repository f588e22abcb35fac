package cookieless

import (
	"context"
	"time"

	"github.com/MrEthical07/cookieless/session"
)

// Record is the opaque session payload: a map of JSON-compatible values.
type Record = session.Record

// Backend is the key-value contract the store runs against. Get must return an
// error matching ErrNotFound for a missing key; every other error is treated as
// a backend failure. [session.Store] is the Redis implementation.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// WriteOptions are the per-write settings passed by the host pipeline.
type WriteOptions struct {
	// ExpireAfter is the entry TTL. Zero stores the entry without expiration.
	ExpireAfter time.Duration
}

// DeleteOptions are the per-delete settings passed by the host pipeline.
type DeleteOptions struct {
	// Drop asks for no replacement session to be tracked.
	Drop bool
}

// Policy is the effective session behavior of a [Store]. It is fixed at
// construction and cannot be configured: the store always defers persistence
// to the end of the request, never skips writing a loaded session, never renews
// the identifier per request, and never reads or writes a session cookie.
type Policy struct {
	Defer      bool
	Skip       bool
	Renew      bool
	CookieOnly bool
}

var forcedPolicy = Policy{
	Defer:      true,
	Skip:       false,
	Renew:      false,
	CookieOnly: false,
}
