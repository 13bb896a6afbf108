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
	"strings"

	"rivaas.dev/routetree/pathparser"
)

// maxRouteNameLength bounds route names so a hostile definition cannot make
// name handling quadratic.
const maxRouteNameLength = 10000

// treeBuilder assembles an immutable node tree from route definitions.
// Builders are single-use: one build call, then the collected diagnostics
// are drained.
type treeBuilder struct {
	cfg   *treeConfig
	diags []DiagnosticEvent
}

// build compiles the definitions into a fully indexed node tree. The
// returned root is immutable; any error leaves no partial state behind
// because nothing was published yet.
func (b *treeBuilder) build(rootPath string, defs []Route) (*Node, error) {
	root := &Node{kind: kindRoot, path: rootPath, childrenByName: make(map[string]*Node)}
	if rootPath != "" {
		parser, err := pathparser.New(rootPath)
		if err != nil {
			return nil, fmt.Errorf("root path: %w", err)
		}
		root.parser = parser
		root.paramKinds = parser.ParamKinds()
		root.queryParams = parser.QueryParams()
	}

	if !b.cfg.validateNames {
		b.diags = append(b.diags, DiagnosticEvent{
			Kind:   DiagValidationSkipped,
			Detail: "route name validation disabled",
		})
	}

	for _, def := range defs {
		if err := b.addDefinition(root, def); err != nil {
			return nil, err
		}
	}
	if err := b.finalize(root, nil); err != nil {
		return nil, err
	}
	b.checkForwardTargets(root, root)
	return root, nil
}

// addDefinition attaches one definition and its children under parent. A
// dotted name walks already-declared segments first, so "users.detail"
// grafts onto "users" no matter where either was declared.
func (b *treeBuilder) addDefinition(parent *Node, def Route) error {
	name := def.Name
	if b.cfg.validateNames {
		if err := validateRouteName(name); err != nil {
			return err
		}
	} else if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidRouteName)
	}

	node := parent
	leafName := name
	for {
		comp, rest, found := strings.Cut(leafName, ".")
		if !found {
			break
		}
		child, ok := node.childrenByName[comp]
		if !ok {
			return fmt.Errorf("%w: cannot graft %q, segment %q is not declared",
				ErrRouteNotFound, clipName(name), comp)
		}
		node = child
		leafName = rest
	}
	if leafName == "" {
		return fmt.Errorf("%w: %q has an empty segment", ErrInvalidRouteName, clipName(name))
	}
	if _, exists := node.childrenByName[leafName]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRouteName, joinName(node.fullName, leafName))
	}
	fullName := joinName(node.fullName, leafName)

	if def.Path == "" {
		return fmt.Errorf("%w: route %q has an empty path", ErrInvalidPattern, fullName)
	}
	pattern := def.Path
	kind := kindSegment
	if strings.HasPrefix(pattern, "~") {
		kind = kindAbsolute
		pattern = pattern[1:]
	}
	parser, err := pathparser.New(pattern)
	if err != nil {
		return fmt.Errorf("route %q: %w", fullName, err)
	}
	constraints, err := compileConstraints(def, parser)
	if err != nil {
		return err
	}

	child := &Node{
		name:           leafName,
		fullName:       fullName,
		path:           def.Path,
		kind:           kind,
		parser:         parser,
		parent:         node,
		childrenByName: make(map[string]*Node),
		paramKinds:     parser.ParamKinds(),
		queryParams:    parser.QueryParams(),
		defaultParams:  def.DefaultParams,
		encodeParams:   def.EncodeParams,
		decodeParams:   def.DecodeParams,
		forwardTo:      def.ForwardTo,
		constraints:    constraints,
	}
	node.children = append(node.children, child)
	node.childrenByName[leafName] = child

	for _, sub := range def.Children {
		if err := b.addDefinition(child, sub); err != nil {
			return err
		}
	}
	return nil
}

// finalize walks the attached tree top-down, building each node's match
// indexes and wiring absolute nodes to every ancestor. chain holds the
// node's ancestors from the root, and stays append-safe for siblings via
// the full-slice recursion below.
func (b *treeBuilder) finalize(node *Node, chain []*Node) error {
	if node.kind == kindAbsolute {
		for _, anc := range chain {
			if anc.parser != nil {
				if len(anc.parser.URLParams()) > 0 {
					return fmt.Errorf("%w: %q is declared under %q which has URL parameters",
						ErrAbsoluteUnderParams, node.fullName, ancestorLabel(anc))
				}
				node.parentSegments = append(node.parentSegments, anc)
			}
			anc.absoluteDescendants = append(anc.absoluteDescendants, node)
		}
	}

	for _, child := range node.children {
		if child.kind == kindAbsolute {
			continue
		}
		node.nonAbsoluteChildren = append(node.nonAbsoluteChildren, child)
		if child.parser.IsRoot() {
			if node.indexChild == nil {
				node.indexChild = child
			}
			node.dynamicChildren = append(node.dynamicChildren, child)
			continue
		}
		if seg, ok := child.parser.FirstStaticSegment(); ok && seg != "" {
			if node.staticIndex == nil {
				node.staticIndex = make(map[string][]*Node)
			}
			node.staticIndex[seg] = append(node.staticIndex[seg], child)
			continue
		}
		node.dynamicChildren = append(node.dynamicChildren, child)
	}

	if node.parser != nil {
		if n := len(node.parser.URLParams()) + len(node.queryParams); n > highParamCountThreshold {
			b.diags = append(b.diags, DiagnosticEvent{
				Kind:   DiagHighParamCount,
				Route:  node.fullName,
				Detail: fmt.Sprintf("%d parameters declared", n),
			})
		}
	}

	childChain := append(chain[:len(chain):len(chain)], node)
	for _, child := range node.children {
		if err := b.finalize(child, childChain); err != nil {
			return err
		}
	}
	return nil
}

// checkForwardTargets flags forward references pointing outside the tree.
// Run after every definition is attached so declaration order cannot cause
// false positives.
func (b *treeBuilder) checkForwardTargets(root, node *Node) {
	if node.forwardTo != "" && !lookupExists(root, node.forwardTo) {
		b.diags = append(b.diags, DiagnosticEvent{
			Kind:   DiagUnknownForwardTarget,
			Route:  node.fullName,
			Detail: fmt.Sprintf("forward target %q is not in the tree", node.forwardTo),
		})
	}
	for _, child := range node.children {
		b.checkForwardTargets(root, child)
	}
}

// emit delivers collected diagnostics to the configured handler, in the
// order they were observed.
func (b *treeBuilder) emit() {
	if b.cfg.diagnostics == nil {
		return
	}
	for _, event := range b.diags {
		b.cfg.diagnostics.HandleDiagnostic(event)
	}
}

// validateRouteName enforces the route-name charset: ASCII letters, digits,
// "_", "-", with "." reserved as the hierarchy separator.
func validateRouteName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidRouteName)
	}
	if len(name) > maxRouteNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidRouteName, maxRouteNameLength)
	}
	if name[0] == '.' || name[len(name)-1] == '.' {
		return fmt.Errorf("%w: %q has a leading or trailing dot", ErrInvalidRouteName, clipName(name))
	}
	for i := 0; i < len(name); i++ {
		switch c := name[i]; {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '_', c == '-':
		case c == '.':
			if name[i-1] == '.' {
				return fmt.Errorf("%w: %q has consecutive dots", ErrInvalidRouteName, clipName(name))
			}
		default:
			return fmt.Errorf("%w: %q contains an illegal character", ErrInvalidRouteName, clipName(name))
		}
	}
	return nil
}

// clipName bounds a name for error messages; names may legally be thousands
// of characters long.
func clipName(name string) string {
	const max = 64
	if len(name) <= max {
		return name
	}
	return name[:max] + "..."
}

// joinName joins a parent full name and a child segment name.
func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// ancestorLabel names a node in error messages; the root has no name, so
// its path stands in.
func ancestorLabel(n *Node) string {
	if n.fullName == "" {
		return n.path
	}
	return n.fullName
}
