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

// Package routetree provides an immutable hierarchical route tree for
// client-side navigation: URL matching with parameter extraction, path
// building as its exact inverse, and name-based lookups over routes
// addressed as dot-separated paths like "users.detail".
//
// # Key Features
//
//   - Immutable trees: mutation returns a new tree, readers never lock
//   - Pattern segments with ":param", "*splat", and "?query" declarations
//   - O(1) static-segment candidate narrowing during matching
//   - Absolute routes ("~/...") that match from the root regardless of
//     nesting
//   - Per-route default params, regexp constraints, and codec hooks
//   - Construction diagnostics and structured debug logging
//
// # Quick Start
//
//	tree, err := routetree.New("", []routetree.Route{
//		{Name: "home", Path: "/"},
//		{Name: "users", Path: "/users?sort", Children: []routetree.Route{
//			{Name: "detail", Path: "/:id", Constraints: map[string]string{"id": `\d+`}},
//		}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if m := tree.Match("/users/7?sort=name"); m != nil {
//		fmt.Println(m.Name())      // users.detail
//		fmt.Println(m.Params["id"]) // 7
//	}
//
//	path, _ := tree.BuildPath("users.detail", routetree.Params{"id": "7"})
//	fmt.Println(path) // /users/7
//
// Matching and building share one options bag, so a call site can hold a
// single []Option and pass it to both directions.
//
// The pathparser subpackage compiles individual segment patterns, the
// transition subpackage diffs navigation states into activation and
// deactivation chains, and the keycache subpackage provides the bounded
// string-keyed cache and registry used to memoize both.
//
// Thread safety: a *Tree is immutable and safe for unbounded concurrent
// use. Use Holder to swap trees under concurrent readers.
package routetree
