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

package transition

import (
	"context"

	"rivaas.dev/routetree/keycache"
)

// Resolver memoizes Compute through a bounded LRU cache. Transitions that
// Cacheable rejects are computed directly and never stored.
type Resolver struct {
	cache *keycache.Cache[Path]
}

// resolverConfig carries Resolver construction settings.
type resolverConfig struct {
	cacheOpts []keycache.Option
}

// ResolverOption configures a Resolver at construction time.
type ResolverOption func(*resolverConfig)

// WithCacheOptions forwards options to the Resolver's underlying cache,
// for example keycache.WithName or keycache.WithMeterProvider.
func WithCacheOptions(opts ...keycache.Option) ResolverOption {
	return func(cfg *resolverConfig) {
		cfg.cacheOpts = append(cfg.cacheOpts, opts...)
	}
}

// NewResolver creates a Resolver whose cache holds at most capacity
// transition paths. The cache is named "transitions" unless overridden
// through WithCacheOptions.
func NewResolver(capacity int, opts ...ResolverOption) (*Resolver, error) {
	cfg := &resolverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	cacheOpts := append([]keycache.Option{keycache.WithName("transitions")}, cfg.cacheOpts...)
	cache, err := keycache.New[Path](capacity, cacheOpts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{cache: cache}, nil
}

// MustNewResolver is like NewResolver but panics on error.
func MustNewResolver(capacity int, opts ...ResolverOption) *Resolver {
	r, err := NewResolver(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the transition path from from to to, served from the
// cache when the transition is cacheable. ctx is used only for cache
// telemetry.
func (r *Resolver) Resolve(ctx context.Context, to State, from *State) Path {
	if !Cacheable(to, from) {
		return Compute(to, from)
	}
	return r.cache.Get(ctx, Key(to, from), func() Path {
		return Compute(to, from)
	})
}

// Cache exposes the underlying cache so callers can register it in a
// keycache.Registry, typically with RouteKeyMatcher for targeted
// invalidation:
//
//	reg.Register("transitions", resolver.Cache(),
//		keycache.WithRouteMatcher(transition.RouteKeyMatcher))
func (r *Resolver) Cache() *keycache.Cache[Path] {
	return r.cache
}
