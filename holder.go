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

import "sync/atomic"

// Holder publishes the current tree to concurrent readers. Trees are
// immutable, so readers take a snapshot with Load and use it without
// locking; writers swap in replacement trees built by AddRoutes,
// RemoveRoutes, or ClearRoutes.
//
// Example:
//
//	holder := routetree.NewHolder(tree)
//
//	// reader goroutines
//	m := holder.Load().Match("/users/7")
//
//	// writer
//	err := holder.Update(func(t *routetree.Tree) (*routetree.Tree, error) {
//		return t.AddRoutes(routetree.Route{Name: "about", Path: "/about"})
//	})
//
// Thread safety: all methods are safe for concurrent use.
type Holder struct {
	tree atomic.Pointer[Tree]
}

// NewHolder returns a holder publishing the given tree.
func NewHolder(tree *Tree) *Holder {
	h := &Holder{}
	h.tree.Store(tree)
	return h
}

// Load returns the current tree.
func (h *Holder) Load() *Tree { return h.tree.Load() }

// Store unconditionally publishes a new tree.
func (h *Holder) Store(tree *Tree) { h.tree.Store(tree) }

// Update derives a replacement from the current tree and publishes it,
// retrying when another writer got in between. fn may run more than once
// and must be pure; an error from fn abandons the update and the current
// tree stays published.
func (h *Holder) Update(fn func(*Tree) (*Tree, error)) error {
	for {
		current := h.tree.Load()
		next, err := fn(current)
		if err != nil {
			return err
		}
		if h.tree.CompareAndSwap(current, next) {
			return nil
		}
	}
}
