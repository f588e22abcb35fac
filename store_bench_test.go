package cookieless

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func BenchmarkFindSessionLoaded(b *testing.B) {
	store, cleanup := newBenchmarkStore(b)
	defer cleanup()

	id := store.NewSessionID()
	if _, ok := store.WriteSession(nil, id, Record{"user": "alice"}, WriteOptions{}); !ok {
		b.Fatalf("seed write failed")
	}
	req := tokenRequest(id)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if got, _ := store.FindSession(req); got != id {
			b.Fatalf("expected loaded session %q, got %q", id, got)
		}
	}
}

func BenchmarkFindSessionAnonymous(b *testing.B) {
	store, cleanup := newBenchmarkStore(b)
	defer cleanup()

	req := tokenRequest("")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.FindSession(req)
	}
}

func BenchmarkWriteSession(b *testing.B) {
	store, cleanup := newBenchmarkStore(b)
	defer cleanup()

	id := store.NewSessionID()
	rec := Record{"user": "alice", "cart": []any{"a", "b", "c"}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := store.WriteSession(nil, id, rec, WriteOptions{}); !ok {
			b.Fatalf("write failed")
		}
	}
}

func BenchmarkNewSessionID(b *testing.B) {
	store, cleanup := newBenchmarkStore(b)
	defer cleanup()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.NewSessionID()
	}
}

func newBenchmarkStore(tb testing.TB) (*Store, func()) {
	tb.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		tb.Fatalf("miniredis.Run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store, err := New().
		WithRedis(rdb).
		WithErrorResolver(NoOpResolver{}).
		Build()
	if err != nil {
		tb.Fatalf("Build failed: %v", err)
	}

	return store, func() {
		_ = store.Close()
		_ = rdb.Close()
		mr.Close()
	}
}
