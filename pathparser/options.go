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

// Config is the per-call configuration for Test, PartialTest, and Build.
// The zero value is not the default; use options or start from the values
// documented on each field. Configs are derived per call and never retained
// by the Parser.
type Config struct {
	// CaseSensitive compares static tokens byte for byte. Default false.
	CaseSensitive bool

	// StrictTrailingSlash makes the presence or absence of a trailing
	// slash significant and disables empty-path normalization. Default
	// false.
	StrictTrailingSlash bool

	// StrongMatching requires PartialTest to stop at a "/" boundary (or
	// the end of the candidate). When false the final static token may
	// consume a prefix of a segment. Default true.
	StrongMatching bool

	// Encoding selects URL parameter encoding. Default EncodingDefault.
	Encoding Encoding

	// QueryMode controls undeclared query parameters. Default
	// QueryModeDefault.
	QueryMode QueryParamsMode

	// Codec shapes query-string output when building.
	Codec QueryCodec

	// IgnoreSearch drops declared query parameters from Build output.
	// Default false.
	IgnoreSearch bool
}

// defaultConfig is shared by every call made without options. It is never
// mutated after package init.
var defaultConfig = &Config{StrongMatching: true}

// Option adjusts the per-call configuration.
type Option func(*Config)

func newConfig(opts []Option) *Config {
	if len(opts) == 0 {
		return defaultConfig
	}
	cfg := *defaultConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &cfg
}

// WithCaseSensitive enables or disables case-sensitive matching of static
// tokens. Parameter values always preserve their original case.
func WithCaseSensitive(enabled bool) Option {
	return func(c *Config) { c.CaseSensitive = enabled }
}

// WithStrictTrailingSlash enables or disables strict trailing-slash
// matching.
func WithStrictTrailingSlash(enabled bool) Option {
	return func(c *Config) { c.StrictTrailingSlash = enabled }
}

// WithStrongMatching enables or disables delimited partial matching.
func WithStrongMatching(enabled bool) Option {
	return func(c *Config) { c.StrongMatching = enabled }
}

// WithURLParamsEncoding selects the URL parameter encoding.
func WithURLParamsEncoding(enc Encoding) Option {
	return func(c *Config) { c.Encoding = enc }
}

// WithQueryParamsMode selects how undeclared query parameters are treated.
func WithQueryParamsMode(mode QueryParamsMode) Option {
	return func(c *Config) { c.QueryMode = mode }
}

// WithQueryCodec sets the query-string formatting applied by Build.
func WithQueryCodec(codec QueryCodec) Option {
	return func(c *Config) { c.Codec = codec }
}

// WithIgnoreSearch makes Build emit the path part only, without declared
// query parameters.
func WithIgnoreSearch(ignore bool) Option {
	return func(c *Config) { c.IgnoreSearch = ignore }
}

// WithConfig replaces the whole per-call configuration. Callers that derive
// one configuration and reuse it across many parsers avoid re-deriving it
// for every segment.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}
