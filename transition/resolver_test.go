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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rivaas.dev/routetree/keycache"
)

// TestNewResolverValidatesCapacity tests capacity propagation to the cache.
func TestNewResolverValidatesCapacity(t *testing.T) {
	t.Parallel()

	r, err := NewResolver(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, keycache.ErrInvalidCapacity)
	assert.Nil(t, r)

	assert.Panics(t, func() { MustNewResolver(-1) })
}

// TestResolverCachesByKey tests that repeated transitions hit the cache and
// produce identical paths.
func TestResolverCachesByKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := MustNewResolver(16)

	to := State{Name: "users.detail"}
	from := &State{Name: "users.list"}

	first := r.Resolve(ctx, to, from)
	second := r.Resolve(ctx, to, from)

	assert.Equal(t, first, second)
	m := r.Cache().Metrics()
	assert.Equal(t, uint64(1), m.Hits)
	assert.Equal(t, uint64(1), m.Misses)
	assert.True(t, r.Cache().Contains("users.list->users.detail"))
}

// TestResolverBypassesCache tests that reloads and meta params skip both
// cache reads and writes.
func TestResolverBypassesCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := MustNewResolver(16)

	reload := State{
		Name: "users.detail",
		Meta: &Meta{Options: NavigationOptions{Reload: true}},
	}
	path := r.Resolve(ctx, reload, &State{Name: "users.detail"})

	// Reload recomputes even for an identical name pair and stores nothing.
	assert.Equal(t, "users.detail", path.Intersection)
	assert.Equal(t, 0, r.Cache().Len())
	m := r.Cache().Metrics()
	assert.Zero(t, m.Hits+m.Misses)
}

// TestResolverInitialTransition tests caching of nil-from transitions under
// the bare target-name key.
func TestResolverInitialTransition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := MustNewResolver(16)

	path := r.Resolve(ctx, State{Name: "a.b"}, nil)
	assert.Equal(t, []string{"a", "a.b"}, path.ToActivate)
	assert.True(t, r.Cache().Contains("a.b"))

	// The empty-name previous state is a different transition and must not
	// collide with the initial one.
	emptyFrom := r.Resolve(ctx, State{Name: "a.b"}, &State{Name: ""})
	assert.Equal(t, []string{""}, emptyFrom.ToDeactivate)
	assert.True(t, r.Cache().Contains("->a.b"))
	assert.Equal(t, 2, r.Cache().Len())
}

// TestResolverRegistryIntegration tests wiring the resolver cache into a
// registry with targeted invalidation.
func TestResolverRegistryIntegration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := MustNewResolver(16)
	reg := keycache.NewRegistry()
	require.NoError(t, reg.Register("transitions", r.Cache(),
		keycache.WithRouteMatcher(RouteKeyMatcher)))

	r.Resolve(ctx, State{Name: "users.detail"}, &State{Name: "users.list"})
	r.Resolve(ctx, State{Name: "orders.list"}, &State{Name: "billing"})

	dropped := reg.InvalidateForRoutes(ctx, "users")

	assert.Equal(t, 1, dropped)
	assert.False(t, r.Cache().Contains("users.list->users.detail"))
	assert.True(t, r.Cache().Contains("billing->orders.list"))
}
