package cookieless

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type resolvedCall struct {
	err       error
	sessionID string
	rec       Record
}

// recordingResolver remembers every failure it is told about.
type recordingResolver struct {
	mu    sync.Mutex
	calls []resolvedCall
}

func (r *recordingResolver) ResolveError(err error, _ *http.Request, sessionID string, rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, resolvedCall{err: err, sessionID: sessionID, rec: rec})
}

func (r *recordingResolver) Calls() []resolvedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]resolvedCall(nil), r.calls...)
}

// faultBackend fails every operation whose error is set.
type faultBackend struct {
	getErr error
	setErr error
	delErr error
	data   map[string][]byte
}

func (f *faultBackend) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (f *faultBackend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.data == nil {
		f.data = map[string][]byte{}
	}
	f.data[key] = value
	return nil
}

func (f *faultBackend) Del(_ context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}

var errBackendDown = errors.New("connection refused")

type storeHarness struct {
	store    *Store
	mr       *miniredis.Miniredis
	resolver *recordingResolver
}

func newStoreHarness(t *testing.T, configure ...func(*Builder)) *storeHarness {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	res := &recordingResolver{}
	b := New().
		WithRedis(rdb).
		WithErrorResolver(res).
		WithMetricsEnabled(true)
	for _, fn := range configure {
		fn(b)
	}

	store, err := b.Build()
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return &storeHarness{store: store, mr: mr, resolver: res}
}

func tokenRequest(sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if sessionID != "" {
		req.Header.Set("Authorization", "Token "+sessionID)
	}
	return req
}

func contextWithCancel(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithCancel(r.Context())
}
