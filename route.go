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
	"maps"
	"regexp"
	"slices"

	"rivaas.dev/routetree/pathparser"
)

// ParamsMapper transforms a parameter set. Mappers receive their own copy
// and return the set to use; returning the input unchanged is fine.
type ParamsMapper func(Params) Params

// Route declares one route segment. Definitions are plain data: the tree
// builder copies what it needs, so a Route can be reused or modified after
// construction.
type Route struct {
	// Name is the segment name, unique among siblings. A dotted name such
	// as "users.detail" grafts the segment under an already-declared
	// ancestor chain.
	Name string

	// Path is the segment's path pattern ("/users/:id?sort"). A leading
	// "~" marks the route absolute: its pattern matches from the tree root
	// regardless of where the route sits in the hierarchy.
	Path string

	// Children declares nested segments.
	Children []Route

	// DefaultParams are the route's declared defaults. BuildPath omits
	// query parameters whose values equal them unless WithEmitDefaults is
	// set.
	DefaultParams Params

	// Constraints restricts parameter values by anchored regular
	// expression, keyed by parameter name. A candidate that matches the
	// path shape but violates a constraint is not a match.
	Constraints map[string]string

	// EncodeParams runs on the params passed to BuildPath before any
	// segment is built.
	EncodeParams ParamsMapper

	// DecodeParams runs on the merged params of a successful match whose
	// leaf is this route.
	DecodeParams ParamsMapper

	// ForwardTo names the route navigation should continue to. Unknown
	// targets are diagnostics, not errors, since the target may be added
	// later.
	ForwardTo string
}

// cloneRoutes deep-copies definitions so a built tree is insulated from
// later mutation of the caller's slices and maps. Function fields are
// copied by reference.
func cloneRoutes(routes []Route) []Route {
	if len(routes) == 0 {
		return nil
	}
	cloned := make([]Route, len(routes))
	for i, r := range routes {
		r.Children = cloneRoutes(r.Children)
		r.DefaultParams = maps.Clone(r.DefaultParams)
		r.Constraints = maps.Clone(r.Constraints)
		cloned[i] = r
	}
	return cloned
}

// constraint is one compiled parameter restriction.
type constraint struct {
	param   string
	pattern *regexp.Regexp
}

// compileConstraints anchors and compiles a route's constraint patterns,
// rejecting constraints on parameters the route does not declare.
func compileConstraints(route Route, parser *pathparser.Parser) ([]constraint, error) {
	if len(route.Constraints) == 0 {
		return nil, nil
	}
	kinds := parser.ParamKinds()
	params := slices.Sorted(maps.Keys(route.Constraints))
	compiled := make([]constraint, 0, len(params))
	for _, param := range params {
		if _, ok := kinds[param]; !ok {
			return nil, fmt.Errorf("%w: %q constrains undeclared parameter %q",
				ErrInvalidConstraint, route.Name, param)
		}
		pattern, err := regexp.Compile("^" + route.Constraints[param] + "$")
		if err != nil {
			return nil, fmt.Errorf("%w: %q parameter %q: %v",
				ErrInvalidConstraint, route.Name, param, err)
		}
		compiled = append(compiled, constraint{param: param, pattern: pattern})
	}
	return compiled, nil
}

// checkConstraints reports whether extracted segment params satisfy the
// node's constraints. Absent parameters pass; constraints restrict values,
// not presence.
func checkConstraints(constraints []constraint, params Params) bool {
	for _, c := range constraints {
		value, ok := params[c.param]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if !c.pattern.MatchString(v) {
				return false
			}
		case []string:
			for _, e := range v {
				if !c.pattern.MatchString(e) {
					return false
				}
			}
		case bool:
			if !c.pattern.MatchString(fmt.Sprint(v)) {
				return false
			}
		}
	}
	return true
}

// RouteInfo is a point-in-time description of one route in a tree, for
// introspection and tooling.
type RouteInfo struct {
	Name        string
	FullName    string
	Path        string
	Absolute    bool
	URLParams   []string
	QueryParams []string
	ForwardTo   string
	Children    int
}
