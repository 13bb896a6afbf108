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

// Package keycache provides a bounded, string-keyed LRU cache for memoizing
// pure computations, plus a registry that aggregates named cache instances
// for metrics export and invalidation broadcasts.
//
// # Key Features
//
//   - Generic Values: Cache[V] memoizes any value type without boxing
//   - Bounded Memory: strict capacity with least-recently-used eviction
//   - Targeted Invalidation: remove entries by key predicate, not just Clear
//   - Metrics: hit/miss/eviction counters, optional OpenTelemetry
//     instruments, and a Prometheus collector on the registry
//   - Zero Overhead When Unconfigured: no telemetry dependencies are
//     touched unless a provider is supplied
//
// Example:
//
//	cache := keycache.MustNew[string](256, keycache.WithName("paths"))
//
//	path := cache.Get(ctx, "users.detail|42", func() string {
//		return expensiveBuild("users.detail", 42)
//	})
//
// Thread safety: all cache and registry methods are safe for concurrent
// use. A single mutex guards each cache's entries and counters as one unit,
// so metrics never drift from the entries they describe.
package keycache
