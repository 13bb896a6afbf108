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

// Package transition computes the minimal segment changes between two
// navigation states: which route segments two dotted names share, which
// must deactivate, and which must activate.
//
// The core is a pure string-prefix diff over ancestor chains. "a.b.c" to
// "a.b.d" shares "a.b", deactivates ["a.b.c"], and activates ["a.b.d"];
// deactivation lists run deepest-first so children tear down before their
// parents. Lifecycle concerns (guards, middleware, async hooks) are layered
// on top by the caller.
//
// A Resolver memoizes the diff through a bounded LRU cache. Navigations that
// carry a reload flag or per-segment meta params bypass the cache, because
// caching is only sound while the comparison is purely name-based.
//
// Thread safety: Compute and NameToIDs are pure functions. A Resolver is
// safe for concurrent use.
package transition
