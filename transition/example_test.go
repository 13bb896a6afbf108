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

package transition_test

import (
	"context"
	"fmt"

	"rivaas.dev/routetree/transition"
)

// ExampleCompute demonstrates the transition diff between two route names.
func ExampleCompute() {
	path := transition.Compute(
		transition.State{Name: "users.detail.activity"},
		&transition.State{Name: "users.list"},
	)

	fmt.Println("intersection:", path.Intersection)
	fmt.Println("deactivate:  ", path.ToDeactivate)
	fmt.Println("activate:    ", path.ToActivate)

	// Output:
	// intersection: users
	// deactivate:   [users.list]
	// activate:     [users.detail users.detail.activity]
}

// ExampleResolver demonstrates cache-backed resolution with a reload
// bypass.
func ExampleResolver() {
	ctx := context.Background()
	resolver := transition.MustNewResolver(128)

	to := transition.State{Name: "orders.detail"}
	from := &transition.State{Name: "orders.list"}

	resolver.Resolve(ctx, to, from)
	resolver.Resolve(ctx, to, from) // served from cache

	reload := transition.State{
		Name: "orders.detail",
		Meta: &transition.Meta{Options: transition.NavigationOptions{Reload: true}},
	}
	resolver.Resolve(ctx, reload, from) // bypasses the cache

	m := resolver.Cache().Metrics()
	fmt.Println("hits:", m.Hits, "misses:", m.Misses, "size:", m.Size)

	// Output:
	// hits: 1 misses: 1 size: 1
}
