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

package pathparser_test

import (
	"fmt"

	"rivaas.dev/routetree/pathparser"
)

// ExampleParser_Test demonstrates full matching with URL and query
// parameters.
func ExampleParser_Test() {
	p := pathparser.MustNew("/users/:id?expand")

	params, ok := p.Test("/users/42?expand=posts")
	fmt.Println(ok, params["id"], params["expand"])

	_, ok = p.Test("/users/42/settings")
	fmt.Println(ok)

	// Output:
	// true 42 posts
	// false
}

// ExampleParser_PartialTest demonstrates prefix matching with a remainder,
// the building block for tree descent.
func ExampleParser_PartialTest() {
	p := pathparser.MustNew("/users/:id")

	params, rest, ok := p.PartialTest("/users/42/posts")
	fmt.Println(ok, params["id"], rest)

	// Output:
	// true 42 /posts
}

// ExampleParser_Build demonstrates constructing a path with query
// parameters.
func ExampleParser_Build() {
	p := pathparser.MustNew("/search?q&page")

	path, err := p.Build(pathparser.Params{"q": "go routers", "page": "2"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(path)

	// Output:
	// /search?q=go+routers&page=2
}

// ExampleParser_Build_encoding demonstrates selecting a URL parameter
// encoding per call.
func ExampleParser_Build_encoding() {
	p := pathparser.MustNew("/proxy/:target")

	def, _ := p.Build(pathparser.Params{"target": "a?b=c"})
	uri, _ := p.Build(
		pathparser.Params{"target": "a?b=c"},
		pathparser.WithURLParamsEncoding(pathparser.EncodingURI),
	)
	fmt.Println(def)
	fmt.Println(uri)

	// Output:
	// /proxy/a%3Fb=c
	// /proxy/a?b=c
}
