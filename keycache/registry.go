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
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Store is the value-type-erased view of a Cache[V]: everything a Registry
// needs without knowing the cached value type. Every *Cache[V] satisfies it.
type Store interface {
	Name() string
	Len() int
	Metrics() Metrics
	InvalidateMatching(pred func(key string) bool) int
	Clear()
}

// RouteMatcher builds a key predicate from a set of route names. A cache
// registered with one invalidates only the keys the predicate selects when
// the route set changes.
type RouteMatcher func(names []string) func(key string) bool

// registration pairs a registered store with its invalidation rule.
type registration struct {
	store   Store
	matcher RouteMatcher
}

// Registry tracks named cache instances so an application can aggregate
// their metrics, expose them to Prometheus through one collector, and
// broadcast invalidations when the route set changes.
type Registry struct {
	tracer trace.Tracer

	mu     sync.RWMutex
	stores map[string]*registration
	order  []string // registration order, for deterministic iteration
}

// NewRegistry creates an empty cache registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	provider := cfg.tracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Registry{
		tracer: provider.Tracer(scopeName),
		stores: make(map[string]*registration),
	}
}

// Register adds cache under name. Returns an error wrapping
// ErrDuplicateCache when the name is taken.
func (r *Registry) Register(name string, cache Store, opts ...RegisterOption) error {
	reg := &registration{store: cache}
	for _, opt := range opts {
		opt(reg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCache, name)
	}
	r.stores[name] = reg
	r.order = append(r.order, name)
	return nil
}

// Cache returns the cache registered under name.
func (r *Registry) Cache(name string) (Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.stores[name]
	if !ok {
		return nil, false
	}
	return reg.store, true
}

// Names returns the registered cache names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// AggregateMetrics sums the snapshots of every registered cache into one
// Metrics value. The hit rate is recomputed from the summed counters.
func (r *Registry) AggregateMetrics() Metrics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var agg Metrics
	for _, name := range r.order {
		m := r.stores[name].store.Metrics()
		agg.Hits += m.Hits
		agg.Misses += m.Misses
		agg.Evictions += m.Evictions
		agg.Size += m.Size
		agg.MaxSize += m.MaxSize
	}
	if total := agg.Hits + agg.Misses; total > 0 {
		agg.HitRate = float64(agg.Hits) / float64(total)
	}
	return agg
}

// InvalidateForRoutes broadcasts a route-set change to every registered
// cache: caches registered with a RouteMatcher drop only the keys the
// matcher selects, the rest are cleared entirely. Returns the total number
// of entries dropped. The broadcast is recorded as a span on the registry's
// tracer.
func (r *Registry) InvalidateForRoutes(ctx context.Context, names ...string) int {
	_, span := r.tracer.Start(ctx, "keycache.invalidate_for_routes",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int("cache.routes_changed", len(names))),
	)
	defer span.End()

	r.mu.RLock()
	regs := make([]*registration, 0, len(r.order))
	for _, name := range r.order {
		regs = append(regs, r.stores[name])
	}
	r.mu.RUnlock()

	dropped := 0
	for _, reg := range regs {
		if reg.matcher != nil {
			dropped += reg.store.InvalidateMatching(reg.matcher(names))
			continue
		}
		dropped += reg.store.Len()
		reg.store.Clear()
	}
	span.SetAttributes(attribute.Int("cache.invalidated", dropped))
	return dropped
}
