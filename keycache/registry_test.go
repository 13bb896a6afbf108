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
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// prefixMatcher treats a key as matching when any changed route name is a
// prefix of it.
func prefixMatcher(names []string) func(string) bool {
	return func(key string) bool {
		for _, name := range names {
			if strings.HasPrefix(key, name) {
				return true
			}
		}
		return false
	}
}

// TestRegistryRegister tests registration, duplicate rejection, and lookup.
func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	nav := MustNew[string](4, WithName("nav"))
	trans := MustNew[string](4, WithName("trans"))

	require.NoError(t, reg.Register("nav", nav))
	require.NoError(t, reg.Register("trans", trans))

	err := reg.Register("nav", MustNew[string](4))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateCache)

	assert.Equal(t, []string{"nav", "trans"}, reg.Names())

	got, ok := reg.Cache("nav")
	require.True(t, ok)
	assert.Equal(t, "nav", got.Name())

	_, ok = reg.Cache("missing")
	assert.False(t, ok)
}

// TestRegistryAggregateMetrics tests summing across caches.
func TestRegistryAggregateMetrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewRegistry()
	nav := MustNew[string](4)
	trans := MustNew[string](4)
	require.NoError(t, reg.Register("nav", nav))
	require.NoError(t, reg.Register("trans", trans))

	nav.Get(ctx, "k", func() string { return "v" })
	nav.Get(ctx, "k", func() string { return "v" })
	trans.Get(ctx, "a", func() string { return "A" })
	trans.Get(ctx, "b", func() string { return "B" })

	agg := reg.AggregateMetrics()
	assert.Equal(t, uint64(1), agg.Hits)
	assert.Equal(t, uint64(3), agg.Misses)
	assert.Equal(t, 3, agg.Size)
	assert.Equal(t, 8, agg.MaxSize)
	assert.InDelta(t, 0.25, agg.HitRate, 1e-9)
}

// TestInvalidateForRoutes tests the broadcast: matcher-equipped caches drop
// matching keys, the rest clear entirely.
func TestInvalidateForRoutes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewRegistry()

	targeted := MustNew[string](8)
	blanket := MustNew[string](8)
	require.NoError(t, reg.Register("targeted", targeted, WithRouteMatcher(prefixMatcher)))
	require.NoError(t, reg.Register("blanket", blanket))

	for _, key := range []string{"users.detail|1", "orders.list|2"} {
		targeted.Get(ctx, key, func() string { return key })
	}
	for _, key := range []string{"a", "b"} {
		blanket.Get(ctx, key, func() string { return key })
	}

	dropped := reg.InvalidateForRoutes(ctx, "users")

	assert.Equal(t, 3, dropped)
	assert.Equal(t, 1, targeted.Len())
	assert.True(t, targeted.Contains("orders.list|2"))
	assert.Equal(t, 0, blanket.Len())
}

// TestInvalidateForRoutesSpan tests that the broadcast records a span with
// the invalidation count.
func TestInvalidateForRoutesSpan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	reg := NewRegistry(WithTracerProvider(provider))
	cache := MustNew[string](4)
	require.NoError(t, reg.Register("nav", cache))
	cache.Get(ctx, "k", func() string { return "v" })

	reg.InvalidateForRoutes(ctx, "users", "orders")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "keycache.invalidate_for_routes", span.Name())

	attrs := make(map[attribute.Key]attribute.Value, len(span.Attributes()))
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(2), attrs["cache.routes_changed"].AsInt64())
	assert.Equal(t, int64(1), attrs["cache.invalidated"].AsInt64())
}

// TestCollector tests the Prometheus exposition of registered caches.
func TestCollector(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewRegistry()
	cache := MustNew[string](4)
	require.NoError(t, reg.Register("nav", cache))

	cache.Get(ctx, "k", func() string { return "v" })
	cache.Get(ctx, "k", func() string { return "v" })

	collector := reg.Collector()

	// One cache, five metric families.
	assert.Equal(t, 5, testutil.CollectAndCount(collector))

	expected := strings.NewReader(`
# HELP routetree_cache_hits_total Number of cache lookups served from the cache.
# TYPE routetree_cache_hits_total counter
routetree_cache_hits_total{cache="nav"} 1
# HELP routetree_cache_size Current number of cached entries.
# TYPE routetree_cache_size gauge
routetree_cache_size{cache="nav"} 1
# HELP routetree_cache_max_size Configured maximum number of cached entries.
# TYPE routetree_cache_max_size gauge
routetree_cache_max_size{cache="nav"} 4
`)
	require.NoError(t, testutil.CollectAndCompare(collector, expected,
		"routetree_cache_hits_total",
		"routetree_cache_size",
		"routetree_cache_max_size",
	))
}
