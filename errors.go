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
	"errors"

	"rivaas.dev/routetree/pathparser"
)

var (
	// ErrInvalidRouteName is returned when a route name fails validation:
	// illegal characters, bad dot placement, or excessive length.
	ErrInvalidRouteName = errors.New("invalid route name")

	// ErrDuplicateRouteName is returned when two sibling routes share a
	// name.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrAbsoluteUnderParams is returned when an absolute route is declared
	// under an ancestor whose own path carries URL parameters; absolute
	// paths short-circuit parent-param propagation, so the combination is
	// unsupported.
	ErrAbsoluteUnderParams = errors.New("absolute route under parameterized ancestor")

	// ErrInvalidConstraint is returned when a route constraint references an
	// undeclared parameter or its pattern does not compile.
	ErrInvalidConstraint = errors.New("invalid route constraint")

	// ErrRouteNotFound is returned when an operation names a route the tree
	// does not contain. A failed Match is not an error; it is a nil result.
	ErrRouteNotFound = errors.New("route not found")
)

// Pattern and build failures surface the pathparser sentinels unchanged, so
// callers need only one errors.Is target per condition.
var (
	// ErrInvalidPattern is returned when a route's path pattern is
	// malformed.
	ErrInvalidPattern = pathparser.ErrInvalidPattern

	// ErrMissingParam is returned by BuildPath when a URL parameter the
	// path requires is absent from params.
	ErrMissingParam = pathparser.ErrMissingParam

	// ErrInvalidParamValue is returned by BuildPath when a supplied param
	// value cannot be serialized into a path segment.
	ErrInvalidParamValue = pathparser.ErrInvalidParamValue
)
