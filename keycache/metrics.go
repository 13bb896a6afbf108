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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// scopeName identifies this package's OpenTelemetry meter and tracer.
const scopeName = "rivaas.dev/routetree/keycache"

// Metric descriptions, shared by the OTel instruments and the Prometheus
// collector so both backends tell the same story.
const (
	descHits      = "Number of cache lookups served from the cache."
	descMisses    = "Number of cache lookups that required computation."
	descEvictions = "Number of entries evicted to stay within capacity."
	descSize      = "Current number of cached entries."
	descMaxSize   = "Configured maximum number of cached entries."
)

// Metrics is a point-in-time snapshot of one cache, or a sum across caches
// when produced by Registry.AggregateMetrics.
type Metrics struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64 // Hits / (Hits + Misses), 0 before any access
	Size      int
	MaxSize   int
}

// instruments holds the optional OpenTelemetry instruments for one cache.
// A nil *instruments disables recording; every method is nil-safe.
type instruments struct {
	attrs     metric.MeasurementOption
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
	size      metric.Int64UpDownCounter
}

func newInstruments(cfg *config) (*instruments, error) {
	if cfg.meterProvider == nil {
		return nil, nil
	}
	meter := cfg.meterProvider.Meter(scopeName)

	hits, err := meter.Int64Counter("routetree_cache_hits_total",
		metric.WithDescription(descHits))
	if err != nil {
		return nil, fmt.Errorf("failed to create hits counter: %w", err)
	}
	misses, err := meter.Int64Counter("routetree_cache_misses_total",
		metric.WithDescription(descMisses))
	if err != nil {
		return nil, fmt.Errorf("failed to create misses counter: %w", err)
	}
	evictions, err := meter.Int64Counter("routetree_cache_evictions_total",
		metric.WithDescription(descEvictions))
	if err != nil {
		return nil, fmt.Errorf("failed to create evictions counter: %w", err)
	}
	size, err := meter.Int64UpDownCounter("routetree_cache_size",
		metric.WithDescription(descSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create size counter: %w", err)
	}

	return &instruments{
		attrs:     metric.WithAttributes(attribute.String("cache.name", cfg.name)),
		hits:      hits,
		misses:    misses,
		evictions: evictions,
		size:      size,
	}, nil
}

func (i *instruments) recordHit(ctx context.Context) {
	if i == nil {
		return
	}
	i.hits.Add(ctx, 1, i.attrs)
}

func (i *instruments) recordMiss(ctx context.Context) {
	if i == nil {
		return
	}
	i.misses.Add(ctx, 1, i.attrs)
}

func (i *instruments) recordEviction(ctx context.Context) {
	if i == nil {
		return
	}
	i.evictions.Add(ctx, 1, i.attrs)
}

func (i *instruments) addSize(ctx context.Context, delta int64) {
	if i == nil {
		return
	}
	i.size.Add(ctx, delta, i.attrs)
}
