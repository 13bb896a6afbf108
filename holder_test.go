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

package routetree

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderLoadStore(t *testing.T) {
	t.Parallel()
	tree := demoTree(t)
	holder := NewHolder(tree)
	assert.Same(t, tree, holder.Load())

	replacement := tree.ClearRoutes()
	holder.Store(replacement)
	assert.Same(t, replacement, holder.Load())
}

func TestHolderUpdate(t *testing.T) {
	t.Parallel()
	tree := demoTree(t)
	holder := NewHolder(tree)

	err := holder.Update(func(t *Tree) (*Tree, error) {
		return t.AddRoutes(Route{Name: "about", Path: "/about"})
	})
	require.NoError(t, err)
	assert.True(t, holder.Load().RouteExists("about"))

	// A failing derivation leaves the published tree alone.
	published := holder.Load()
	err = holder.Update(func(t *Tree) (*Tree, error) {
		return t.AddRoutes(Route{Name: "about", Path: "/elsewhere"})
	})
	require.ErrorIs(t, err, ErrDuplicateRouteName)
	assert.Same(t, published, holder.Load())
}

func TestHolderConcurrentUpdates(t *testing.T) {
	t.Parallel()
	tree, err := New("", []Route{{Name: "home", Path: "/"}})
	require.NoError(t, err)
	holder := NewHolder(tree)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("route%d", i)
			err := holder.Update(func(t *Tree) (*Tree, error) {
				return t.AddRoutes(Route{Name: name, Path: "/" + name})
			})
			assert.NoError(t, err)
		}(i)
	}

	// Readers race the writers on whatever snapshot they observe.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				m := holder.Load().Match("/")
				assert.NotNil(t, m)
			}
		}()
	}
	wg.Wait()

	// Every CAS retry re-derives from the latest tree, so no update is lost.
	final := holder.Load()
	for i := 0; i < writers; i++ {
		assert.True(t, final.RouteExists(fmt.Sprintf("route%d", i)), "route%d", i)
	}
	assert.Len(t, final.Routes(), writers+1)
}
