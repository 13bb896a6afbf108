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
	"container/list"
	"context"
	"fmt"
	"sync"
)

// entry is one cached key/value pair; recency list elements carry it so an
// eviction can find its map key without a second lookup.
type entry[V any] struct {
	key   string
	value V
}

// Cache is a bounded LRU cache mapping string keys to values of type V.
//
// Every Get hit promotes the entry to most recently used; a miss computes
// the value and inserts it, evicting the least recently used entry when the
// cache is at capacity. The capacity bound holds at all times.
type Cache[V any] struct {
	name    string
	maxSize int
	inst    *instruments

	mu        sync.Mutex
	entries   map[string]*list.Element
	order     *list.List // front is most recently used
	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a cache holding at most maxSize entries. maxSize must be
// positive or New returns an error wrapping ErrInvalidCapacity.
func New[V any](maxSize int, opts ...Option) (*Cache[V], error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, maxSize)
	}
	cfg := newCacheConfig(opts)
	inst, err := newInstruments(cfg)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{
		name:    cfg.name,
		maxSize: maxSize,
		inst:    inst,
		entries: make(map[string]*list.Element, maxSize),
		order:   list.New(),
	}, nil
}

// MustNew is like New but panics on error. Use when the capacity is a
// compile-time constant:
//
//	var transitions = keycache.MustNew[string](1024)
func MustNew[V any](maxSize int, opts ...Option) *Cache[V] {
	c, err := New[V](maxSize, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the instance name set with WithName.
func (c *Cache[V]) Name() string { return c.name }

// Get returns the value cached under key, computing and inserting it first
// on a miss. compute is never called on a hit. It runs while the cache lock
// is held, so it must not call back into the same cache; keep it a pure
// function of its inputs. ctx is used only for telemetry recording.
func (c *Cache[V]) Get(ctx context.Context, key string, compute func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.hits++
		c.order.MoveToFront(elem)
		c.inst.recordHit(ctx)
		return elem.Value.(*entry[V]).value
	}

	c.misses++
	c.inst.recordMiss(ctx)
	value := compute()
	if c.order.Len() >= c.maxSize {
		c.evictOldest(ctx)
	}
	c.entries[key] = c.order.PushFront(&entry[V]{key: key, value: value})
	c.inst.addSize(ctx, 1)
	return value
}

// evictOldest removes the least recently used entry. Callers hold c.mu.
func (c *Cache[V]) evictOldest(ctx context.Context) {
	back := c.order.Back()
	if back == nil {
		return
	}
	c.order.Remove(back)
	delete(c.entries, back.Value.(*entry[V]).key)
	c.evictions++
	c.inst.recordEviction(ctx)
	c.inst.addSize(ctx, -1)
}

// Contains reports whether key is cached. It does not promote the entry and
// does not count as a hit or miss.
func (c *Cache[V]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// InvalidateMatching removes every entry whose key satisfies pred and
// returns the number removed. Hit/miss/eviction counters are unaffected;
// invalidation is not an eviction.
func (c *Cache[V]) InvalidateMatching(pred func(key string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if ent := elem.Value.(*entry[V]); pred(ent.key) {
			c.order.Remove(elem)
			delete(c.entries, ent.key)
			removed++
		}
		elem = next
	}
	if removed > 0 {
		c.inst.addSize(context.Background(), int64(-removed))
	}
	return removed
}

// Clear removes every entry and resets the hit/miss/eviction counters.
// Clearing an empty cache is a no-op.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.order.Len()
	c.entries = make(map[string]*list.Element, c.maxSize)
	c.order.Init()
	c.hits, c.misses, c.evictions = 0, 0, 0
	if removed > 0 {
		c.inst.addSize(context.Background(), int64(-removed))
	}
}

// Metrics returns a consistent snapshot of the cache counters and sizes,
// taken under the same lock that guards the entries.
func (c *Cache[V]) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := Metrics{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.order.Len(),
		MaxSize:   c.maxSize,
	}
	if total := c.hits + c.misses; total > 0 {
		m.HitRate = float64(c.hits) / float64(total)
	}
	return m
}
