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

import "strings"

// SegmentsByName resolves a dot-separated route name to its segment chain,
// shallowest first. When the tree has a root path, the root node leads the
// chain. Returns nil when any component is missing; resolution walks one
// map lookup per component, independent of tree size.
func (t *Tree) SegmentsByName(name string) []*Node {
	return lookupSegments(t.root, name)
}

// RouteExists reports whether a dot-separated route name resolves in the
// tree. It allocates nothing.
func (t *Tree) RouteExists(name string) bool {
	return lookupExists(t.root, name)
}

// MetaFromSegments maps each segment's full name to its declared parameter
// kinds, the shape transition state carries so later invalidation decisions
// need no tree access. The inner maps are the tree's own; callers must not
// modify them.
func MetaFromSegments(segments []*Node) map[string]map[string]ParamKind {
	if len(segments) == 0 {
		return nil
	}
	meta := make(map[string]map[string]ParamKind, len(segments))
	for _, seg := range segments {
		meta[seg.fullName] = seg.paramKinds
	}
	return meta
}

func lookupSegments(root *Node, name string) []*Node {
	if name == "" {
		return nil
	}
	segments := make([]*Node, 0, strings.Count(name, ".")+2)
	if root.parser != nil {
		segments = append(segments, root)
	}
	node := root
	for rest := name; rest != ""; {
		comp, tail, _ := strings.Cut(rest, ".")
		child, ok := node.childrenByName[comp]
		if !ok {
			return nil
		}
		segments = append(segments, child)
		node = child
		rest = tail
	}
	return segments
}

func lookupExists(root *Node, name string) bool {
	if name == "" {
		return false
	}
	node := root
	for rest := name; rest != ""; {
		comp, tail, _ := strings.Cut(rest, ".")
		node = node.childrenByName[comp]
		if node == nil {
			return false
		}
		rest = tail
	}
	return true
}
