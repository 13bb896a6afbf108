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

	"rivaas.dev/routetree/pathparser"
)

// nodeKind discriminates node shapes so matching logic can branch
// exhaustively instead of probing nullable fields.
type nodeKind uint8

const (
	// kindRoot is the tree root; its parser is nil when the tree was built
	// with an empty root path.
	kindRoot nodeKind = iota

	// kindSegment is a regular child segment matched under its parent.
	kindSegment

	// kindAbsolute is a "~"-prefixed segment whose pattern matches from
	// the tree root, skipping its ancestors' path prefixes.
	kindAbsolute
)

// Node is one segment in a built route tree. Nodes are immutable after
// construction; every accessor is safe for unbounded concurrent use.
type Node struct {
	name     string
	fullName string
	path     string // pattern as declared, including a leading "~"
	kind     nodeKind
	parser   *pathparser.Parser // nil only on a parser-less root

	parent         *Node
	children       []*Node // declaration order
	childrenByName map[string]*Node

	// staticIndex maps a child's lower-cased literal first path segment to
	// the children that declare it, for O(1) candidate narrowing.
	// dynamicChildren holds the non-absolute children outside the index;
	// they are scanned only when the index probe does not settle the match.
	staticIndex     map[string][]*Node
	dynamicChildren []*Node

	nonAbsoluteChildren []*Node
	absoluteDescendants []*Node
	indexChild          *Node // child whose pattern is the literal "/"

	// parentSegments is the ancestor chain an absolute node was declared
	// under, prepended to match results so callers see the full
	// hierarchical chain.
	parentSegments []*Node

	paramKinds  map[string]pathparser.ParamKind
	queryParams []string // declared query parameter names, shared read-only

	defaultParams Params
	encodeParams  ParamsMapper
	decodeParams  ParamsMapper
	forwardTo     string
	constraints   []constraint
}

// Name returns the node's segment name, "" for the root.
func (n *Node) Name() string { return n.name }

// FullName returns the dot-joined ancestor chain, "" for the root.
func (n *Node) FullName() string { return n.fullName }

// Path returns the path pattern as declared, including a leading "~" on
// absolute routes.
func (n *Node) Path() string { return n.path }

// Parser returns the node's compiled path parser, nil on a parser-less
// root.
func (n *Node) Parser() *pathparser.Parser { return n.parser }

// Absolute reports whether the node's pattern matches from the tree root.
func (n *Node) Absolute() bool { return n.kind == kindAbsolute }

// Parent returns the node's parent, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in declaration order. The slice is
// a copy; the nodes are shared.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Child returns the child with the given segment name.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.childrenByName[name]
	return child, ok
}

// ParamKinds returns the node's parameter-name to kind mapping, precomputed
// at construction. The map is shared and must not be modified; it is nil
// when the segment declares no parameters.
func (n *Node) ParamKinds() map[string]ParamKind { return n.paramKinds }

// DefaultParams returns a copy of the route's declared default params.
func (n *Node) DefaultParams() Params {
	if len(n.defaultParams) == 0 {
		return nil
	}
	cloned := make(Params, len(n.defaultParams))
	for k, v := range n.defaultParams {
		cloned[k] = v
	}
	return cloned
}

// ForwardTo returns the name of the route navigation should continue to,
// "" when the route does not forward.
func (n *Node) ForwardTo() string { return n.forwardTo }

// info snapshots the node for introspection.
func (n *Node) info() RouteInfo {
	info := RouteInfo{
		Name:      n.name,
		FullName:  n.fullName,
		Path:      n.path,
		Absolute:  n.kind == kindAbsolute,
		ForwardTo: n.forwardTo,
		Children:  len(n.children),
	}
	if n.parser != nil {
		info.URLParams = n.parser.URLParams()
		info.QueryParams = n.parser.QueryParams()
	}
	return info
}
