package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForCoversAllIndices(t *testing.T) {
	const n = 1000
	hits := make([]int32, n)

	For(n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	}, DefaultConfig())

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d executed %d times, want 1", i, h)
		}
	}
}

func TestForSequentialFallback(t *testing.T) {
	// Below MinChunkSize the loop must run inline, in order.
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 100}

	var order []int
	For(10, func(i int) {
		order = append(order, i)
	}, cfg)

	if len(order) != 10 {
		t.Fatalf("executed %d iterations, want 10", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("sequential fallback ran out of order: %v", order)
		}
	}
}

func TestForDisabled(t *testing.T) {
	var count int32
	For(500, func(i int) {
		// Sequential config means no concurrent writers.
		count++
	}, Sequential())

	if count != 500 {
		t.Fatalf("executed %d iterations, want 500", count)
	}
}

func TestForZeroIterations(t *testing.T) {
	called := false
	For(0, func(i int) { called = true }, DefaultConfig())
	if called {
		t.Error("For(0) should not invoke the body")
	}
}
