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
	"strings"

	"rivaas.dev/routetree/pathparser"
)

// State is one navigation state: a resolved route name, its merged params,
// and optional per-navigation metadata.
type State struct {
	Name   string
	Params map[string]any
	Meta   *Meta
}

// Meta carries navigation metadata: the per-segment parameter kinds
// (as produced by routetree.MetaFromSegments) and the options the
// navigation was requested with.
type Meta struct {
	Params  map[string]map[string]pathparser.ParamKind
	Options NavigationOptions
}

// NavigationOptions are the caller-supplied flags that travel with a
// navigation request.
type NavigationOptions struct {
	// Reload forces every segment to re-run its lifecycle even when the
	// route name is unchanged.
	Reload bool
}

// hasMetaParams reports whether any segment carries parameter metadata.
func (s State) hasMetaParams() bool {
	if s.Meta == nil {
		return false
	}
	for _, params := range s.Meta.Params {
		if len(params) > 0 {
			return true
		}
	}
	return false
}

// Path is the outcome of diffing two navigation states.
type Path struct {
	// Intersection is the full name of the deepest segment both states
	// share, "" when they share none.
	Intersection string

	// ToActivate lists the target-side segment names below the
	// intersection, ordered root to leaf.
	ToActivate []string

	// ToDeactivate lists the source-side segment names below the
	// intersection, ordered leaf to root so children tear down before
	// their parents.
	ToDeactivate []string
}

// NameToIDs expands a dotted route name into its ancestor chain:
// "a.b.c" yields ["a", "a.b", "a.b.c"]. The empty name yields [""].
func NameToIDs(name string) []string {
	if name == "" {
		return []string{""}
	}
	ids := make([]string, 0, strings.Count(name, ".")+1)
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			ids = append(ids, name[:i])
		}
	}
	return append(ids, name)
}

// Compute diffs the ancestor chains of two states. A nil from means there
// is no previous state: the whole target chain activates and nothing
// deactivates.
func Compute(to State, from *State) Path {
	toIDs := NameToIDs(to.Name)
	if from == nil {
		return Path{ToActivate: toIDs}
	}

	fromIDs := NameToIDs(from.Name)
	i := 0
	for i < len(toIDs) && i < len(fromIDs) && toIDs[i] == fromIDs[i] {
		i++
	}

	var intersection string
	if i > 0 {
		intersection = toIDs[i-1]
	}

	var toDeactivate []string
	if n := len(fromIDs) - i; n > 0 {
		toDeactivate = make([]string, 0, n)
		for j := len(fromIDs) - 1; j >= i; j-- {
			toDeactivate = append(toDeactivate, fromIDs[j])
		}
	}

	return Path{
		Intersection: intersection,
		ToActivate:   toIDs[i:],
		ToDeactivate: toDeactivate,
	}
}

// Cacheable reports whether the transition may be served from a cache.
// It is false when the navigation carries a reload flag or either state has
// per-segment meta params, because then the outcome is not a pure function
// of the two names.
func Cacheable(to State, from *State) bool {
	if to.Meta != nil && to.Meta.Options.Reload {
		return false
	}
	if to.hasMetaParams() {
		return false
	}
	if from != nil && from.hasMetaParams() {
		return false
	}
	return true
}

// Key derives the cache key for a transition. Keys for transitions with a
// previous state are "from->to"; initial transitions use the bare target
// name. Route names cannot contain '>', so the two forms never collide.
func Key(to State, from *State) string {
	if from == nil {
		return to.Name
	}
	return from.Name + "->" + to.Name
}

// RouteKeyMatcher builds a predicate over transition cache keys that
// selects every key referencing one of the given route names or any of
// their descendants. Use it as the keycache.RouteMatcher when registering a
// transition cache, so adding or removing routes purges only the affected
// transitions.
func RouteKeyMatcher(names []string) func(key string) bool {
	return func(key string) bool {
		from, to, found := strings.Cut(key, "->")
		if !found {
			to = key
			from = ""
		}
		for _, name := range names {
			if sideReferences(from, name) || sideReferences(to, name) {
				return true
			}
		}
		return false
	}
}

// sideReferences reports whether one side of a transition key names route
// or one of its descendants.
func sideReferences(side, route string) bool {
	if route == "" {
		return false
	}
	return side == route || strings.HasPrefix(side, route+".")
}
