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

package pathparser

import "errors"

var (
	// ErrInvalidPattern is returned by New when a path pattern is malformed:
	// missing leading slash, empty segment, unnamed or duplicate parameter,
	// splat in a non-final position, or an invalid query declaration.
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrMissingParam is returned by Build when the params map lacks a value
	// for a URL or splat parameter required by the pattern.
	ErrMissingParam = errors.New("missing required parameter")

	// ErrInvalidParamValue is returned by Build when a parameter value has a
	// type that cannot occupy the requested position, such as a []string
	// supplied for a single URL segment.
	ErrInvalidParamValue = errors.New("invalid parameter value")
)
