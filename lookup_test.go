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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsByName(t *testing.T) {
	t.Parallel()
	tree := demoTree(t)

	segments := tree.SegmentsByName("users.detail.activity")
	require.Len(t, segments, 3)
	assert.Equal(t, "users", segments[0].FullName())
	assert.Equal(t, "users.detail", segments[1].FullName())
	assert.Equal(t, "users.detail.activity", segments[2].FullName())

	assert.Nil(t, tree.SegmentsByName("users.detail.missing"))
	assert.Nil(t, tree.SegmentsByName("missing"))
	assert.Nil(t, tree.SegmentsByName(""))
}

func TestSegmentsByNameIncludesParserRoot(t *testing.T) {
	t.Parallel()
	tree, err := New("/app", demoRoutes())
	require.NoError(t, err)

	segments := tree.SegmentsByName("users")
	require.Len(t, segments, 2)
	assert.Empty(t, segments[0].FullName())
	assert.Equal(t, "/app", segments[0].Path())
	assert.Equal(t, "users", segments[1].FullName())
}

func TestMetaFromSegments(t *testing.T) {
	t.Parallel()
	tree := demoTree(t)

	meta := MetaFromSegments(tree.SegmentsByName("users.detail"))
	require.Len(t, meta, 2)
	assert.Equal(t, map[string]ParamKind{
		"sort": ParamKindQuery,
		"page": ParamKindQuery,
	}, meta["users"])
	assert.Equal(t, map[string]ParamKind{
		"id":  ParamKindURL,
		"tab": ParamKindQuery,
	}, meta["users.detail"])

	assert.Nil(t, MetaFromSegments(nil))

	// Matched chains work the same way as name lookups.
	m := tree.Match("/users/7")
	require.NotNil(t, m)
	meta = MetaFromSegments(m.Segments)
	assert.Contains(t, meta, "users.detail")
}

func TestNodeAccessors(t *testing.T) {
	t.Parallel()
	tree := demoTree(t)

	users, ok := tree.Root().Child("users")
	require.True(t, ok)
	assert.Equal(t, "users", users.Name())
	assert.Equal(t, "users", users.FullName())
	assert.Equal(t, "/users?sort&page", users.Path())
	assert.False(t, users.Absolute())
	assert.Same(t, tree.Root(), users.Parent())
	require.NotNil(t, users.Parser())

	children := users.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "list", children[0].Name())

	// The returned slice is a copy; scribbling on it cannot corrupt the tree.
	children[0] = nil
	again := users.Children()
	assert.Equal(t, "list", again[0].Name())

	defaults := users.DefaultParams()
	assert.Equal(t, Params{"sort": "name"}, defaults)
	defaults["sort"] = "mutated"
	assert.Equal(t, Params{"sort": "name"}, users.DefaultParams())

	_, ok = users.Child("missing")
	assert.False(t, ok)

	detail, ok := users.Child("detail")
	require.True(t, ok)
	assert.Equal(t, ParamKindURL, detail.ParamKinds()["id"])
	assert.Empty(t, detail.ForwardTo())
}
