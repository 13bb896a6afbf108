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

// Package pathparser compiles route path patterns into matchers and builders.
//
// A pattern describes one route segment and may combine static tokens, URL
// parameters, a splat parameter, and query parameter declarations:
//
//	/users                  static
//	/users/:id              URL parameter "id" (one path segment)
//	/files/*filepath        splat parameter, consumes the rest of the path
//	/search?q&page          query parameters "q" and "page" (always optional)
//
// A compiled Parser is immutable and safe for concurrent use. Matching and
// building behavior (case sensitivity, trailing-slash strictness, parameter
// encoding, query handling) is controlled per call through options, so one
// Parser serves every option combination:
//
//	p := pathparser.MustNew("/users/:id?sort")
//
//	params, ok := p.Test("/users/42?sort=asc")
//	// ok == true, params == Params{"id": "42", "sort": "asc"}
//
//	path, err := p.Build(pathparser.Params{"id": "42"})
//	// path == "/users/42"
//
// Test requires the entire candidate to be consumed; PartialTest consumes a
// delimited prefix and returns the remainder, which is how hierarchical
// matching over several parsers composes.
package pathparser
