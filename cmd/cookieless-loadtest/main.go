package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/cookieless"
	"github.com/MrEthical07/cookieless/metrics/export/prometheus"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	var (
		sessions    = flag.Int("sessions", 100000, "number of sessions to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (find + write)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "ls", "session key prefix")
		dumpMetrics = flag.Bool("metrics", false, "print store metrics in Prometheus text format at the end")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	if *sessions <= 0 || *concurrency <= 0 || *ops <= 0 {
		log.Error().Msg("sessions, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start miniredis")
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		log.Info().Str("addr", addr).Msg("using miniredis")
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		log.Info().Str("addr", addr).Msg("using redis")
	}
	defer cleanup()

	cfg := cookieless.DefaultConfig()
	cfg.Session.KeyPrefix = *prefix
	cfg.Session.ExpireAfter = 24 * time.Hour
	cfg.Metrics = cookieless.MetricsConfig{Enabled: true, EnableLatencyHistograms: true}

	var resolverFailures atomic.Int64
	store, err := cookieless.New().
		WithConfig(cfg).
		WithRedis(client).
		WithErrorResolver(cookieless.ErrorResolverFunc(func(error, *http.Request, string, cookieless.Record) {
			resolverFailures.Add(1)
		})).
		Build()
	if err != nil {
		log.Fatal().Err(err).Msg("build store")
	}
	defer store.Close()

	ids := make([]string, *sessions)
	log.Info().Int("sessions", *sessions).Msg("seeding")
	startSeed := time.Now()
	for i := range ids {
		ids[i] = store.NewSessionID()
		rec := cookieless.Record{"user": fmt.Sprintf("u-%d", i), "visits": 0}
		if _, ok := store.WriteSession(nil, ids[i], rec, cookieless.WriteOptions{ExpireAfter: cfg.Session.ExpireAfter}); !ok {
			log.Fatal().Int("index", i).Msg("seed write failed")
		}
	}
	log.Info().Dur("took", time.Since(startSeed).Round(time.Millisecond)).Msg("seeded")

	findStats := runPhase(*ops, *concurrency, 7919, func(r *rand.Rand, _ int) bool {
		id := ids[r.Intn(len(ids))]
		got, _ := store.FindSession(tokenRequest(id))
		return got == id
	})

	writeStats := runPhase(*ops, *concurrency, 6151, func(r *rand.Rand, i int) bool {
		id := ids[r.Intn(len(ids))]
		rec := cookieless.Record{"user": id, "visits": i}
		_, ok := store.WriteSession(nil, id, rec, cookieless.WriteOptions{ExpireAfter: cfg.Session.ExpireAfter})
		return ok
	})

	fmt.Println("---- results ----")
	printStats("find", findStats)
	printStats("write", writeStats)
	fmt.Printf("resolver failures: %d\n", resolverFailures.Load())

	if *dumpMetrics {
		fmt.Print(prometheus.NewPrometheusExporter(store).Render())
	}
}

func tokenRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+id)
	return req
}

// runPhase runs op ops times across concurrency workers and records each
// call's latency. op reports success.
func runPhase(ops, concurrency int, seedStep int64, op func(r *rand.Rand, i int) bool) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*seedStep))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				ok := op(r, i)
				d := time.Since(t0)
				if !ok {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
