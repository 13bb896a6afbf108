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
	"log/slog"
	"slices"
	"strings"
)

// Tree is an immutable route tree. Matching, building, and lookups never
// mutate it, so a single tree may serve any number of goroutines without
// locking; AddRoutes, RemoveRoutes, and ClearRoutes return new trees and
// leave the receiver untouched.
//
// # Key Features
//
//   - Hierarchical routes addressed by dot-separated names ("users.detail")
//   - URL matching with parameter extraction and an O(1) static-segment index
//   - Path building as the exact inverse of matching
//   - Per-route defaults, constraints, and parameter codec hooks
//
// Example:
//
//	tree, err := routetree.New("", []routetree.Route{
//		{Name: "users", Path: "/users", Children: []routetree.Route{
//			{Name: "detail", Path: "/:id"},
//		}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if m := tree.Match("/users/7"); m != nil {
//		fmt.Println(m.Name(), m.Params["id"]) // users.detail 7
//	}
//
// Thread safety: all methods are safe for concurrent use.
type Tree struct {
	root     *Node
	rootPath string
	defs     []Route
	cfg      *treeConfig
}

// New builds a route tree. rootPath is an optional pattern every
// non-absolute route is nested under; pass "" for none. Definitions are
// deep-copied, so the caller's slices and maps may be reused afterwards.
//
// Construction fails with ErrInvalidRouteName, ErrDuplicateRouteName,
// ErrInvalidPattern, ErrInvalidConstraint, ErrAbsoluteUnderParams, or
// ErrRouteNotFound (dotted name grafting onto a missing ancestor).
func New(rootPath string, routes []Route, opts ...TreeOption) (*Tree, error) {
	return newTree(rootPath, cloneRoutes(routes), newTreeConfig(opts))
}

// MustNew is New, panicking on error. Intended for static route tables
// declared at program start.
func MustNew(rootPath string, routes []Route, opts ...TreeOption) *Tree {
	tree, err := New(rootPath, routes, opts...)
	if err != nil {
		panic(fmt.Sprintf("routetree: %v", err))
	}
	return tree
}

func newTree(rootPath string, defs []Route, cfg *treeConfig) (*Tree, error) {
	b := &treeBuilder{cfg: cfg}
	root, err := b.build(rootPath, defs)
	if err != nil {
		return nil, err
	}
	b.emit()
	cfg.logger.Debug("route tree built",
		slog.Int("routes", countNodes(root)),
		slog.String("root_path", rootPath))
	return &Tree{root: root, rootPath: rootPath, defs: defs, cfg: cfg}, nil
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// RootPath returns the pattern the tree was rooted at, "" when none was
// given.
func (t *Tree) RootPath() string { return t.rootPath }

// AddRoutes returns a new tree with the definitions appended. Dotted names
// may graft onto routes of the receiver. The whole definition set is
// revalidated, so an addition cannot corrupt a tree: on error the receiver
// remains the latest valid tree.
func (t *Tree) AddRoutes(routes ...Route) (*Tree, error) {
	if len(routes) == 0 {
		return t, nil
	}
	defs := append(slices.Clip(slices.Clone(t.defs)), cloneRoutes(routes)...)
	return newTree(t.rootPath, defs, t.cfg)
}

// RemoveRoutes returns a new tree without the named routes and their
// descendants. Each name must identify a route in the receiver; a miss
// fails with ErrRouteNotFound and no tree is produced.
func (t *Tree) RemoveRoutes(names ...string) (*Tree, error) {
	if len(names) == 0 {
		return t, nil
	}
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !t.RouteExists(name) {
			return nil, fmt.Errorf("%w: %q", ErrRouteNotFound, name)
		}
		targets[name] = struct{}{}
	}
	return newTree(t.rootPath, pruneRoutes(t.defs, "", targets), t.cfg)
}

// ClearRoutes returns an empty tree with the receiver's root path and
// options.
func (t *Tree) ClearRoutes() *Tree {
	tree, err := newTree(t.rootPath, nil, t.cfg)
	if err != nil {
		// The root path compiled when the receiver was built; with no
		// definitions there is nothing left that can fail.
		panic(fmt.Sprintf("routetree: clear: %v", err))
	}
	return tree
}

// Routes lists every route in the tree in declaration order, depth first.
func (t *Tree) Routes() []RouteInfo {
	infos := make([]RouteInfo, 0, countNodes(t.root))
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.children {
			infos = append(infos, child.info())
			walk(child)
		}
	}
	walk(t.root)
	return infos
}

// pruneRoutes rebuilds a definition slice without the targeted routes and
// anything beneath them. Kept definitions are value copies; the input is
// never mutated.
func pruneRoutes(defs []Route, prefix string, targets map[string]struct{}) []Route {
	kept := make([]Route, 0, len(defs))
	for _, def := range defs {
		full := joinName(prefix, def.Name)
		if pruned(full, targets) {
			continue
		}
		def.Children = pruneRoutes(def.Children, full, targets)
		kept = append(kept, def)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func pruned(full string, targets map[string]struct{}) bool {
	if _, ok := targets[full]; ok {
		return true
	}
	for target := range targets {
		if strings.HasPrefix(full, target+".") {
			return true
		}
	}
	return false
}

func countNodes(root *Node) int {
	n := 0
	var walk func(node *Node)
	walk = func(node *Node) {
		n += len(node.children)
		for _, child := range node.children {
			walk(child)
		}
	}
	walk(root)
	return n
}
