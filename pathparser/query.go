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

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryParamsMode controls how query parameters that no pattern declared are
// treated during matching.
type QueryParamsMode uint8

const (
	// QueryModeDefault keeps undeclared query parameters as extra params.
	// Valueless keys decode to "" and repeated keys collect into []string.
	QueryModeDefault QueryParamsMode = iota

	// QueryModeStrict fails the match when the candidate carries query
	// parameters the pattern did not declare.
	QueryModeStrict

	// QueryModeLoose is a superset of QueryModeDefault: valueless keys
	// decode to boolean true and "key[]" bracket arrays fold into the
	// bare key.
	QueryModeLoose
)

// String returns the option-style name of the mode.
func (m QueryParamsMode) String() string {
	switch m {
	case QueryModeDefault:
		return "default"
	case QueryModeStrict:
		return "strict"
	case QueryModeLoose:
		return "loose"
	default:
		return "unknown"
	}
}

// ArrayFormat selects how multi-value query parameters are emitted when
// building a query string.
type ArrayFormat uint8

const (
	// ArrayRepeat emits one "key=value" pair per element.
	ArrayRepeat ArrayFormat = iota

	// ArrayBrackets emits "key[]=value" pairs.
	ArrayBrackets
)

// BoolFormat selects how boolean query parameter values are emitted.
type BoolFormat uint8

const (
	// BoolKeyOnly emits a bare "key" for true and omits the key for false.
	BoolKeyOnly BoolFormat = iota

	// BoolString emits "key=true" or "key=false".
	BoolString
)

// QueryCodec bundles the query-string formatting choices applied when
// building. Parsing accepts every format the active QueryParamsMode allows,
// so the codec only shapes output.
type QueryCodec struct {
	Arrays ArrayFormat
	Bools  BoolFormat
}

// SplitQuery splits a candidate path at the first "?" into its path part and
// raw query string (without the "?"). The query string is empty when the
// candidate has none.
func SplitQuery(path string) (pathPart, rawQuery string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

// ParseQuery decodes a raw query string (no leading "?") into params
// according to mode. Repeated keys collect into []string in encounter order.
// Malformed percent-escapes are kept verbatim rather than failing the parse.
// Returns nil when raw is empty.
func ParseQuery(raw string, mode QueryParamsMode) Params {
	if raw == "" {
		return nil
	}
	var params Params
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		key, value, hasValue := strings.Cut(pair, "=")
		key = unescapeQuery(key)
		if key == "" {
			continue
		}
		if mode == QueryModeLoose {
			key = strings.TrimSuffix(key, "[]")
		}
		var v any
		switch {
		case hasValue:
			v = unescapeQuery(value)
		case mode == QueryModeLoose:
			v = true
		default:
			v = ""
		}
		if params == nil {
			params = make(Params)
		}
		params[key] = foldQueryValue(params[key], v)
	}
	return params
}

// foldQueryValue merges a repeated key occurrence into the previous value.
// Single occurrences keep their native type; repeats collect string forms.
func foldQueryValue(prev, next any) any {
	if prev == nil {
		return next
	}
	list, ok := prev.([]string)
	if !ok {
		list = []string{queryValueString(prev)}
	}
	return append(list, queryValueString(next))
}

func queryValueString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(x)
	}
}

// EncodeQuery builds a query string ("a=1&b=2", no leading "?") for the
// given keys in order, skipping keys absent from params. Values may be
// string, []string, or bool; anything else is formatted with fmt.Sprint.
func EncodeQuery(keys []string, params Params, codec QueryCodec) string {
	if len(keys) == 0 || len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, key := range keys {
		v, ok := params[key]
		if !ok || v == nil {
			continue
		}
		appendQueryValue(&sb, key, v, codec)
	}
	return sb.String()
}

func appendQueryValue(sb *strings.Builder, key string, v any, codec QueryCodec) {
	escapedKey := url.QueryEscape(key)
	switch x := v.(type) {
	case []string:
		name := escapedKey
		if codec.Arrays == ArrayBrackets {
			name += "[]"
		}
		for _, e := range x {
			appendQueryPair(sb, name, url.QueryEscape(e))
		}
	case bool:
		if codec.Bools == BoolString {
			appendQueryPair(sb, escapedKey, queryValueString(x))
			return
		}
		if x {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(escapedKey)
		}
	default:
		appendQueryPair(sb, escapedKey, url.QueryEscape(queryValueString(x)))
	}
}

func appendQueryPair(sb *strings.Builder, key, value string) {
	if sb.Len() > 0 {
		sb.WriteByte('&')
	}
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(value)
}

func unescapeQuery(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
