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
	"slices"
	"strings"

	"rivaas.dev/routetree/pathparser"
)

// Match is a successful URL match: the chain of segments whose patterns
// jointly consumed the path, and the parameters they extracted.
type Match struct {
	// Segments is the matched chain, shallowest first. For absolute routes
	// it includes the declaring ancestors even though their patterns took no
	// part in matching, so the chain always spells the full route name.
	Segments []*Node

	// Params merges every segment's extracted URL parameters with the query
	// parameters bound from the URL. Deeper segments win name collisions.
	Params Params
}

// Name returns the full name of the deepest matched segment, "" when the
// match stopped at the tree root.
func (m *Match) Name() string {
	if m == nil || len(m.Segments) == 0 {
		return ""
	}
	return m.Segments[len(m.Segments)-1].fullName
}

// Match resolves a URL path against the tree. It returns nil when nothing
// matches; failing to match is an expected outcome, not an error.
//
// An empty path is treated as "/" unless WithStrictTrailingSlash is set.
// Query parameters declared by any matched segment are bound by name;
// undeclared ones follow WithQueryParamsMode: bound as extras by default, a
// failed match under QueryModeStrict.
func (t *Tree) Match(path string, opts ...Option) *Match {
	cfg := newCallConfig(opts)
	segOpts := cfg.segmentOptions()

	pathPart, rawQuery := pathparser.SplitQuery(path)
	if pathPart == "" && !cfg.StrictTrailingSlash {
		pathPart = "/"
	}

	m := &treeMatcher{segOpts: segOpts}
	var found *nodeMatch
	if t.root.parser != nil {
		found = m.matchNode(t.root, pathPart, nil, nil)
	} else {
		found = m.matchChildren(t.root, pathPart, nil, nil)
	}
	if found == nil {
		for _, abs := range t.root.absoluteDescendants {
			if found = m.matchNode(abs, pathPart, nil, nil); found != nil {
				break
			}
		}
	}
	if found == nil {
		return nil
	}

	segments := found.segments
	if first := segments[0]; first.kind == kindAbsolute && len(first.parentSegments) > 0 {
		full := make([]*Node, 0, len(first.parentSegments)+len(segments)+1)
		full = append(full, first.parentSegments...)
		segments = append(full, segments...)
	} else {
		segments = slices.Clone(segments)
	}
	if idx := segments[len(segments)-1].indexChild; idx != nil {
		segments = append(segments, idx)
	}

	params := found.params
	if rawQuery != "" {
		parsed := pathparser.ParseQuery(rawQuery, cfg.QueryMode)
		for key, value := range parsed {
			if cfg.QueryMode == pathparser.QueryModeStrict && !declaresQueryParam(segments, key) {
				return nil
			}
			params = setParam(params, key, value)
		}
	}

	leaf := segments[len(segments)-1]
	if leaf.decodeParams != nil {
		params = leaf.decodeParams(cloneParams(params))
	}
	return &Match{Segments: segments, Params: params}
}

// nodeMatch is a successful descent: the node chain from the first candidate
// and the accumulated params.
type nodeMatch struct {
	segments []*Node
	params   Params
}

// treeMatcher carries per-call state through the recursive descent.
type treeMatcher struct {
	segOpts []pathparser.Option
}

// matchNode tests one candidate against the remaining path. When the
// candidate consumes a prefix but does not complete the path, the descent
// continues into its non-absolute children.
func (m *treeMatcher) matchNode(node *Node, remaining string, segs []*Node, params Params) *nodeMatch {
	extracted, rest, ok := node.parser.PartialTest(remaining, m.segOpts...)
	if !ok || !checkConstraints(node.constraints, extracted) {
		return nil
	}
	merged := mergeParams(params, extracted)
	chain := append(segs, node)

	if node.parser.Completes(rest, m.segOpts...) {
		return &nodeMatch{segments: chain, params: merged}
	}
	return m.matchChildren(node, rest, chain, merged)
}

// matchChildren tries a node's non-absolute children against the remainder.
// When the node indexes static first segments, the probe narrows the
// candidates to the children declaring that literal; the remaining dynamic
// children are scanned in declaration order.
func (m *treeMatcher) matchChildren(parent *Node, remaining string, segs []*Node, params Params) *nodeMatch {
	if len(parent.staticIndex) > 0 {
		if seg := firstSegmentLower(remaining); seg != "" {
			for _, child := range parent.staticIndex[seg] {
				if r := m.matchNode(child, remaining, segs, params); r != nil {
					return r
				}
			}
		}
	}
	for _, child := range parent.dynamicChildren {
		if r := m.matchNode(child, remaining, segs, params); r != nil {
			return r
		}
	}
	return nil
}

// firstSegmentLower extracts the lower-cased first path segment of a
// remainder, "" when the remainder has none.
func firstSegmentLower(remaining string) string {
	if len(remaining) < 2 || remaining[0] != '/' {
		return ""
	}
	seg := remaining[1:]
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	return strings.ToLower(seg)
}

// declaresQueryParam reports whether any segment in the chain declares the
// query parameter.
func declaresQueryParam(segments []*Node, name string) bool {
	for _, seg := range segments {
		if seg.paramKinds[name] == pathparser.ParamKindQuery {
			return true
		}
	}
	return false
}

// mergeParams layers a segment's extracted params over the accumulated set.
// The accumulator is never mutated: sibling candidates tried after a failed
// deep descent must see it unchanged.
func mergeParams(acc, extracted Params) Params {
	if len(extracted) == 0 {
		return acc
	}
	merged := make(Params, len(acc)+len(extracted))
	for k, v := range acc {
		merged[k] = v
	}
	for k, v := range extracted {
		merged[k] = v
	}
	return merged
}

// setParam assigns into params, allocating on first use.
func setParam(params Params, key string, value any) Params {
	if params == nil {
		params = make(Params, 4)
	}
	params[key] = value
	return params
}

// cloneParams copies params into a fresh non-nil map for handing to caller
// hooks.
func cloneParams(params Params) Params {
	cloned := make(Params, len(params))
	for k, v := range params {
		cloned[k] = v
	}
	return cloned
}
