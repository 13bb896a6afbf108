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
	"slices"
	"strings"
)

// Params holds parameter values extracted by matching or consumed by
// building. Values are string for URL and single query parameters,
// []string for repeated query keys, and bool for loose-mode valueless
// query keys. A nil Params is a valid empty set.
type Params map[string]any

// ParamKind classifies where a parameter travels: in the URL path or in the
// query string.
type ParamKind string

const (
	// ParamKindURL marks ":name" and "*name" parameters.
	ParamKindURL ParamKind = "url"

	// ParamKindQuery marks "?name" parameters.
	ParamKindQuery ParamKind = "query"
)

type tokenKind uint8

const (
	tokenStatic tokenKind = iota
	tokenParam
	tokenSplat
)

// token is one "/"-delimited unit of a compiled pattern: a literal, a URL
// parameter, or a splat.
type token struct {
	kind  tokenKind
	value string // literal text, or the parameter name
}

// Parser is the compiled, immutable form of one path pattern. All methods
// are safe for concurrent use.
type Parser struct {
	pattern     string
	tokens      []token
	urlParams   []string // ":" and "*" parameter names, declaration order
	queryParams []string // "?" parameter names, declaration order
	paramKinds  map[string]ParamKind
	splat       string // splat parameter name, "" when absent
	isRoot      bool   // path part is exactly "/"
	trailing    bool   // declared with a trailing slash
}

// New compiles a path pattern. The path part must begin with "/" (a pattern
// may also be query-only, declaring nothing but "?params"); segments are
// entirely static, a ":param", or a final "*splat". Query parameters are
// declared after the first "?", separated by "&". Returns an error wrapping
// ErrInvalidPattern when the pattern is malformed.
func New(pattern string) (*Parser, error) {
	p := &Parser{pattern: pattern}
	pathPart, queryPart := SplitQuery(pattern)
	if err := p.compilePath(pathPart); err != nil {
		return nil, err
	}
	if err := p.compileQuery(queryPart); err != nil {
		return nil, err
	}
	if pathPart == "" && len(p.queryParams) == 0 {
		return nil, fmt.Errorf("%w: %q must begin with '/'", ErrInvalidPattern, pattern)
	}
	if n := len(p.urlParams) + len(p.queryParams); n > 0 {
		p.paramKinds = make(map[string]ParamKind, n)
		for _, name := range p.urlParams {
			p.paramKinds[name] = ParamKindURL
		}
		for _, name := range p.queryParams {
			p.paramKinds[name] = ParamKindQuery
		}
	}
	return p, nil
}

// MustNew is like New but panics on error. Use for patterns known at
// compile time:
//
//	var userPath = pathparser.MustNew("/users/:id")
func MustNew(pattern string) *Parser {
	p, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Parser) compilePath(pathPart string) error {
	switch pathPart {
	case "":
		// Query-only pattern; validated against queryParams in New.
		return nil
	case "/":
		p.isRoot = true
		return nil
	}
	if pathPart[0] != '/' {
		return fmt.Errorf("%w: %q must begin with '/'", ErrInvalidPattern, p.pattern)
	}
	rest := pathPart[1:]
	if strings.HasSuffix(rest, "/") {
		p.trailing = true
		rest = rest[:len(rest)-1]
	}
	segments := strings.Split(rest, "/")
	for i, seg := range segments {
		switch {
		case seg == "":
			return fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPattern, p.pattern)
		case seg[0] == ':':
			name := seg[1:]
			if err := p.addURLParam(name); err != nil {
				return err
			}
			p.tokens = append(p.tokens, token{kind: tokenParam, value: name})
		case seg[0] == '*':
			name := seg[1:]
			if i != len(segments)-1 {
				return fmt.Errorf("%w: splat %q in %q must be the final segment", ErrInvalidPattern, name, p.pattern)
			}
			if err := p.addURLParam(name); err != nil {
				return err
			}
			p.tokens = append(p.tokens, token{kind: tokenSplat, value: name})
			p.splat = name
		default:
			p.tokens = append(p.tokens, token{kind: tokenStatic, value: seg})
		}
	}
	return nil
}

func (p *Parser) compileQuery(queryPart string) error {
	if queryPart == "" {
		return nil
	}
	for _, name := range strings.Split(queryPart, "&") {
		if !validParamName(name) {
			return fmt.Errorf("%w: %q declares an invalid query parameter %q", ErrInvalidPattern, p.pattern, name)
		}
		if p.declares(name) {
			return fmt.Errorf("%w: %q declares parameter %q twice", ErrInvalidPattern, p.pattern, name)
		}
		p.queryParams = append(p.queryParams, name)
	}
	return nil
}

func (p *Parser) addURLParam(name string) error {
	if !validParamName(name) {
		return fmt.Errorf("%w: %q declares an invalid parameter name %q", ErrInvalidPattern, p.pattern, name)
	}
	if p.declares(name) {
		return fmt.Errorf("%w: %q declares parameter %q twice", ErrInvalidPattern, p.pattern, name)
	}
	p.urlParams = append(p.urlParams, name)
	return nil
}

func (p *Parser) declares(name string) bool {
	return slices.Contains(p.urlParams, name) || slices.Contains(p.queryParams, name)
}

// validParamName accepts ASCII alphanumerics plus '_', '-', and '.'.
func validParamName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '_', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}

// Pattern returns the pattern the Parser was compiled from.
func (p *Parser) Pattern() string { return p.pattern }

// URLParams returns the ":" and "*" parameter names in declaration order.
func (p *Parser) URLParams() []string { return slices.Clone(p.urlParams) }

// QueryParams returns the "?" parameter names in declaration order.
func (p *Parser) QueryParams() []string { return slices.Clone(p.queryParams) }

// HasQueryParams reports whether the pattern declares query parameters.
func (p *Parser) HasQueryParams() bool { return len(p.queryParams) > 0 }

// HasSplat reports whether the pattern ends in a "*splat" parameter.
func (p *Parser) HasSplat() bool { return p.splat != "" }

// IsRoot reports whether the path part of the pattern is exactly "/".
func (p *Parser) IsRoot() bool { return p.isRoot }

// TrailingSlash reports whether the pattern was declared with a trailing
// slash (excluding the bare root pattern "/").
func (p *Parser) TrailingSlash() bool { return p.trailing }

// ParamKinds returns the parameter-name to kind mapping precomputed at
// compile time. The returned map is shared and must not be modified; it is
// nil when the pattern declares no parameters.
func (p *Parser) ParamKinds() map[string]ParamKind { return p.paramKinds }

// FirstStaticSegment returns the lower-cased literal first path segment,
// used to index children for O(1) candidate narrowing. ok is false when the
// first segment is dynamic, grouped (begins with "("), or the pattern is
// query-only. The root pattern "/" reports "" with ok true.
func (p *Parser) FirstStaticSegment() (string, bool) {
	if p.isRoot {
		return "", true
	}
	if len(p.tokens) == 0 {
		return "", false
	}
	t := p.tokens[0]
	if t.kind != tokenStatic || strings.HasPrefix(t.value, "(") {
		return "", false
	}
	return strings.ToLower(t.value), true
}

// Test reports whether candidate matches the pattern in full: the entire
// path part must be consumed, modulo trailing-slash normalization unless
// WithStrictTrailingSlash is set. Declared query parameters present in the
// candidate are extracted; undeclared ones follow the query-params mode
// (extra params by default, a failed match under QueryModeStrict). Returns
// the extracted params, which may be nil when the match binds none.
func (p *Parser) Test(candidate string, opts ...Option) (Params, bool) {
	cfg := newConfig(opts)
	pathPart, rawQuery := SplitQuery(candidate)
	if pathPart == "" && !cfg.StrictTrailingSlash {
		pathPart = "/"
	}
	params, rest, ok := p.consume(pathPart, cfg, false)
	if !ok || !p.completes(rest, cfg) {
		return nil, false
	}
	for key, value := range ParseQuery(rawQuery, cfg.QueryMode) {
		if !p.isQueryParam(key) && cfg.QueryMode == QueryModeStrict {
			return nil, false
		}
		params = setParam(params, key, value)
	}
	return params, true
}

// PartialTest reports whether the pattern consumes a prefix of candidate,
// returning the extracted params and the unconsumed remainder of the path
// part. With strong matching (the default) the prefix must end at a "/"
// boundary or the end of the candidate. Declared query parameters found in
// the candidate's query string are bound; the remainder never includes the
// query string.
func (p *Parser) PartialTest(candidate string, opts ...Option) (Params, string, bool) {
	cfg := newConfig(opts)
	pathPart, rawQuery := SplitQuery(candidate)
	if pathPart == "" && !cfg.StrictTrailingSlash {
		pathPart = "/"
	}
	params, rest, ok := p.consume(pathPart, cfg, !cfg.StrongMatching)
	if !ok {
		return nil, "", false
	}
	if rawQuery != "" && len(p.queryParams) > 0 {
		parsed := ParseQuery(rawQuery, cfg.QueryMode)
		for _, name := range p.queryParams {
			if v, ok := parsed[name]; ok {
				params = setParam(params, name, v)
			}
		}
	}
	return params, rest, true
}

// Completes reports whether a PartialTest remainder amounts to a full match
// of the pattern under the trailing-slash rules: an empty remainder, or a
// bare "/" that the pattern's declared trailing slash and the strictness
// option permit.
func (p *Parser) Completes(remainder string, opts ...Option) bool {
	return p.completes(remainder, newConfig(opts))
}

// Build substitutes params into the pattern and returns the resulting path,
// encoding parameter values per WithURLParamsEncoding and appending declared
// query parameters present in params unless WithIgnoreSearch is set. Errors
// wrap ErrMissingParam or ErrInvalidParamValue.
func (p *Parser) Build(params Params, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	var sb strings.Builder
	sb.Grow(len(p.pattern) + 16)
	if p.isRoot {
		sb.WriteByte('/')
	}
	for _, tok := range p.tokens {
		sb.WriteByte('/')
		switch tok.kind {
		case tokenStatic:
			sb.WriteString(tok.value)
		case tokenParam:
			s, err := p.paramValue(params, tok.value)
			if err != nil {
				return "", err
			}
			sb.WriteString(encodeParam(s, cfg.Encoding))
		case tokenSplat:
			s, err := p.paramValue(params, tok.value)
			if err != nil {
				return "", err
			}
			sb.WriteString(encodeSplat(s, cfg.Encoding))
		}
	}
	if p.trailing {
		sb.WriteByte('/')
	}
	if !cfg.IgnoreSearch {
		if q := EncodeQuery(p.queryParams, params, cfg.Codec); q != "" {
			sb.WriteByte('?')
			sb.WriteString(q)
		}
	}
	return sb.String(), nil
}

func (p *Parser) paramValue(params Params, name string) (string, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %q requires %q", ErrMissingParam, p.pattern, name)
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return queryValueString(x), nil
	case []string:
		return "", fmt.Errorf("%w: parameter %q of %q cannot take a list value", ErrInvalidParamValue, name, p.pattern)
	case fmt.Stringer:
		return x.String(), nil
	default:
		return fmt.Sprint(x), nil
	}
}

// consume walks the compiled tokens over path, which must carry no query
// part. It returns extracted params and the unconsumed remainder; the
// remainder is "" or begins with "/" unless allowPrefix let the final static
// token stop mid-segment.
func (p *Parser) consume(path string, cfg *Config, allowPrefix bool) (Params, string, bool) {
	if p.isRoot {
		switch {
		case path == "/":
			return nil, "", true
		case strings.HasPrefix(path, "/"):
			return nil, path, true
		}
		return nil, "", false
	}
	var params Params
	if len(p.urlParams) > 0 {
		params = make(Params, len(p.urlParams))
	}
	rest := path
	for i, tok := range p.tokens {
		if !strings.HasPrefix(rest, "/") {
			return nil, "", false
		}
		rest = rest[1:]
		switch tok.kind {
		case tokenStatic:
			seg, tail := splitSegment(rest)
			if !segmentEqual(seg, tok.value, cfg.CaseSensitive) {
				if allowPrefix && i == len(p.tokens)-1 && hasSegmentPrefix(seg, tok.value, cfg.CaseSensitive) {
					return params, rest[len(tok.value):], true
				}
				return nil, "", false
			}
			rest = tail
		case tokenParam:
			seg, tail := splitSegment(rest)
			if seg == "" {
				return nil, "", false
			}
			val, err := decodeParam(seg, cfg.Encoding)
			if err != nil {
				return nil, "", false
			}
			params[tok.value] = val
			rest = tail
		case tokenSplat:
			val, err := decodeParam(rest, cfg.Encoding)
			if err != nil {
				return nil, "", false
			}
			params[tok.value] = val
			rest = ""
		}
	}
	return params, rest, true
}

// completes reports whether a consume remainder amounts to a full match
// under the trailing-slash rules.
func (p *Parser) completes(rest string, cfg *Config) bool {
	switch rest {
	case "":
		return !cfg.StrictTrailingSlash || !p.trailing
	case "/":
		if p.isRoot {
			return false
		}
		return !cfg.StrictTrailingSlash || p.trailing
	default:
		return false
	}
}

func (p *Parser) isQueryParam(name string) bool {
	return p.paramKinds[name] == ParamKindQuery
}

func setParam(params Params, key string, value any) Params {
	if params == nil {
		params = make(Params)
	}
	params[key] = value
	return params
}

func splitSegment(s string) (string, string) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

func segmentEqual(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

func hasSegmentPrefix(seg, prefix string, caseSensitive bool) bool {
	return len(seg) >= len(prefix) && segmentEqual(seg[:len(prefix)], prefix, caseSensitive)
}
