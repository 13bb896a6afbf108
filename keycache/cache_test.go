// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestNewValidatesCapacity tests the capacity contract.
func TestNewValidatesCapacity(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, -1, -100} {
		c, err := New[string](capacity)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
		assert.Nil(t, c)
	}

	c, err := New[string](1)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

// TestMustNewPanics tests the panic contract of MustNew.
func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew[int](0)
	})
	assert.NotPanics(t, func() {
		MustNew[int](8)
	})
}

// TestGetComputesOncePerKey tests that compute is only called on a miss.
func TestGetComputesOncePerKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := MustNew[string](8)

	calls := 0
	compute := func() string {
		calls++
		return "value"
	}

	assert.Equal(t, "value", cache.Get(ctx, "k", compute))
	assert.Equal(t, "value", cache.Get(ctx, "k", compute))
	assert.Equal(t, "value", cache.Get(ctx, "k", compute))
	assert.Equal(t, 1, calls)
}

// TestEvictionOrder tests that hits promote entries so the true
// least-recently-used entry is evicted.
func TestEvictionOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := MustNew[string](2)
	value := func(s string) func() string {
		return func() string { return s }
	}

	cache.Get(ctx, "a", value("A"))
	cache.Get(ctx, "b", value("B"))
	cache.Get(ctx, "a", value("A")) // promote "a" over "b"
	cache.Get(ctx, "c", value("C")) // evicts "b"

	assert.True(t, cache.Contains("a"))
	assert.False(t, cache.Contains("b"))
	assert.True(t, cache.Contains("c"))
	assert.Equal(t, 2, cache.Len())

	m := cache.Metrics()
	assert.Equal(t, uint64(1), m.Hits)
	assert.Equal(t, uint64(3), m.Misses)
	assert.Equal(t, uint64(1), m.Evictions)
	assert.Equal(t, 2, m.Size)
	assert.Equal(t, 2, m.MaxSize)
	assert.InDelta(t, 0.25, m.HitRate, 1e-9)
}

// TestCapacityBoundHolds tests that the size never exceeds maxSize.
func TestCapacityBoundHolds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := MustNew[int](3)

	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("k%d", i)
		got := cache.Get(ctx, key, func() int { return i })
		assert.Equal(t, i, got)
		assert.LessOrEqual(t, cache.Len(), 3)
	}
	assert.Equal(t, 3, cache.Len())
	assert.Equal(t, uint64(47), cache.Metrics().Evictions)
}

// TestContainsDoesNotPromote tests that Contains is recency-neutral.
func TestContainsDoesNotPromote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := MustNew[string](2)
	value := func(s string) func() string {
		return func() string { return s }
	}

	cache.Get(ctx, "a", value("A"))
	cache.Get(ctx, "b", value("B"))
	require.True(t, cache.Contains("a"))

	// "a" is still the least recently used despite the Contains call.
	cache.Get(ctx, "c", value("C"))
	assert.False(t, cache.Contains("a"))
	assert.True(t, cache.Contains("b"))

	m := cache.Metrics()
	assert.Equal(t, uint64(0), m.Hits, "Contains must not count as a hit")
}

// TestInvalidateMatching tests predicate-targeted removal.
func TestInvalidateMatching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := MustNew[string](8)
	for _, key := range []string{"users.list", "users.detail", "orders.list"} {
		cache.Get(ctx, key, func() string { return key })
	}

	removed := cache.InvalidateMatching(func(key string) bool {
		return strings.HasPrefix(key, "users.")
	})

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, cache.Len())
	assert.False(t, cache.Contains("users.list"))
	assert.False(t, cache.Contains("users.detail"))
	assert.True(t, cache.Contains("orders.list"))

	m := cache.Metrics()
	assert.Equal(t, uint64(3), m.Misses, "invalidation must not touch counters")
	assert.Equal(t, uint64(0), m.Evictions, "invalidation is not an eviction")

	assert.Equal(t, 0, cache.InvalidateMatching(func(string) bool { return false }))
}

// TestClearResetsEverything tests that Clear empties entries and counters.
func TestClearResetsEverything(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := MustNew[string](2)
	cache.Get(ctx, "a", func() string { return "A" })
	cache.Get(ctx, "a", func() string { return "A" })
	cache.Get(ctx, "b", func() string { return "B" })
	cache.Get(ctx, "c", func() string { return "C" })

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
	assert.False(t, cache.Contains("a"))
	m := cache.Metrics()
	assert.Equal(t, Metrics{MaxSize: 2}, m)

	// Idempotent.
	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

// TestHitRateBeforeAnyAccess tests the zero-access hit rate.
func TestHitRateBeforeAnyAccess(t *testing.T) {
	t.Parallel()

	cache := MustNew[string](4, WithName("idle"))
	m := cache.Metrics()
	assert.Zero(t, m.HitRate)
	assert.Equal(t, "idle", cache.Name())
}

// TestConcurrentAccess exercises the cache from several goroutines; run with
// the race detector.
func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := MustNew[int](16)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g+i)%24)
				cache.Get(ctx, key, func() int { return i })
				cache.Contains(key)
				if i%50 == 0 {
					cache.InvalidateMatching(func(k string) bool { return k == key })
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 16)
	m := cache.Metrics()
	assert.Equal(t, uint64(1600), m.Hits+m.Misses)
}

// TestOTelInstrumentation tests the optional instruments against a manual
// reader.
func TestOTelInstrumentation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	cache := MustNew[string](2,
		WithName("nav"),
		WithMeterProvider(provider),
	)

	cache.Get(ctx, "a", func() string { return "A" })
	cache.Get(ctx, "a", func() string { return "A" })
	cache.Get(ctx, "b", func() string { return "B" })
	cache.Get(ctx, "c", func() string { return "C" }) // evicts

	assertCounter(t, reader, "routetree_cache_hits_total", "nav", 1)
	assertCounter(t, reader, "routetree_cache_misses_total", "nav", 3)
	assertCounter(t, reader, "routetree_cache_evictions_total", "nav", 1)
	assertCounter(t, reader, "routetree_cache_size", "nav", 2)
}

// assertCounter collects from reader and asserts the int64 sum recorded for
// the named instrument and cache.
func assertCounter(t *testing.T, reader *sdkmetric.ManualReader, name, cacheName string, want int64) {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "instrument %s should be an int64 sum", name)
			require.Len(t, sum.DataPoints, 1)
			dp := sum.DataPoints[0]
			got, ok := dp.Attributes.Value(attribute.Key("cache.name"))
			require.True(t, ok)
			assert.Equal(t, cacheName, got.AsString())
			assert.Equal(t, want, dp.Value)
			return
		}
	}
	t.Fatalf("instrument %s not collected", name)
}
