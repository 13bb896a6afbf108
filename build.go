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

// BuildPath renders the path for a named route from params, the inverse of
// Match: a built path fed back through Match with the same options yields
// the same route and parameter values.
//
// Each segment on the way to the leaf contributes its pattern; an absolute
// segment discards everything accumulated before it. Declared query
// parameters present in params are appended, except those equal to the
// route's declared defaults (see WithEmitDefaults). Unknown names fail with
// ErrRouteNotFound, missing URL parameters with ErrMissingParam.
func (t *Tree) BuildPath(name string, params Params, opts ...Option) (string, error) {
	cfg := newCallConfig(opts)
	segments := lookupSegments(t.root, name)
	if segments == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	leaf := segments[len(segments)-1]
	if leaf.encodeParams != nil {
		params = leaf.encodeParams(cloneParams(params))
	}

	start := 0
	for i, seg := range segments {
		if seg.kind == kindAbsolute {
			start = i
		}
	}
	contributing := segments[start:]

	segOpts := cfg.buildSegmentOptions()
	var sb strings.Builder
	for _, seg := range contributing {
		part, err := seg.parser.Build(params, segOpts...)
		if err != nil {
			return "", fmt.Errorf("route %q: %w", name, err)
		}
		sb.WriteString(part)
	}
	path := applyTrailingSlash(sb.String(), cfg.trailingSlash)

	if !cfg.IgnoreSearch {
		keys := queryKeys(contributing)
		if len(keys) > 0 {
			emit := params
			if !cfg.emitDefaults {
				emit = withoutDefaults(params, leaf.defaultParams, keys)
			}
			if q := pathparser.EncodeQuery(keys, emit, cfg.Codec); q != "" {
				path += "?" + q
			}
		}
	}
	return path, nil
}

// applyTrailingSlash adjusts the trailing slash of a built path. The bare
// root "/" is left alone in every mode.
func applyTrailingSlash(path string, mode TrailingSlashMode) string {
	switch mode {
	case TrailingSlashAlways:
		if path == "" {
			return "/"
		}
		if !strings.HasSuffix(path, "/") {
			return path + "/"
		}
	case TrailingSlashNever:
		if len(path) > 1 {
			return strings.TrimSuffix(path, "/")
		}
	}
	return path
}

// queryKeys merges the query parameter names declared by the contributing
// segments, deduplicated, shallowest segment first.
func queryKeys(segments []*Node) []string {
	var keys []string
	var seen map[string]struct{}
	for _, seg := range segments {
		for _, key := range seg.queryParams {
			if _, dup := seen[key]; dup {
				continue
			}
			if seen == nil {
				seen = make(map[string]struct{}, 4)
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}

// withoutDefaults drops query parameters whose values equal the route's
// declared defaults, comparing by rendered text so "5" and a Stringer
// printing "5" both count as the default. Returns params untouched when
// nothing matches.
func withoutDefaults(params, defaults Params, keys []string) Params {
	if len(defaults) == 0 || len(params) == 0 {
		return params
	}
	var filtered Params
	for _, key := range keys {
		def, hasDefault := defaults[key]
		if !hasDefault {
			continue
		}
		val, present := params[key]
		if !present || paramText(val) != paramText(def) {
			continue
		}
		if filtered == nil {
			filtered = cloneParams(params)
		}
		delete(filtered, key)
	}
	if filtered == nil {
		return params
	}
	return filtered
}

func paramText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
