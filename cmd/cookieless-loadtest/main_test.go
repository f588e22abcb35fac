package main

import (
	"math/rand"
	"testing"
	"time"
)

func TestPercentile(t *testing.T) {
	samples := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	cases := map[int]time.Duration{0: 1, 50: 5, 95: 9, 99: 9, 100: 10}
	for p, want := range cases {
		if got := percentile(samples, p); got != want {
			t.Fatalf("p%d = %v, want %v", p, got, want)
		}
	}
	if percentile(nil, 50) != 0 {
		t.Fatal("empty samples must yield 0")
	}
}

func TestRunPhaseCountsFailures(t *testing.T) {
	stats := runPhase(100, 4, 1, func(_ *rand.Rand, i int) bool { return i%10 != 0 })
	if stats.ops != 100 || stats.failures != 10 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.p50 > stats.p99 {
		t.Fatalf("percentiles out of order: %+v", stats)
	}
}
