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
	"context"
	"log/slog"

	"rivaas.dev/routetree/pathparser"
)

// Re-exported pathparser types, so common call sites need only this
// package.
type (
	// Params holds route parameter values keyed by name.
	Params = pathparser.Params

	// ParamKind classifies a parameter as a URL or query parameter.
	ParamKind = pathparser.ParamKind

	// Encoding selects how URL parameter values are percent-encoded.
	Encoding = pathparser.Encoding

	// QueryParamsMode controls how undeclared query parameters are treated.
	QueryParamsMode = pathparser.QueryParamsMode

	// QueryCodec shapes query-string output when building paths.
	QueryCodec = pathparser.QueryCodec
)

const (
	EncodingDefault      = pathparser.EncodingDefault
	EncodingURI          = pathparser.EncodingURI
	EncodingURIComponent = pathparser.EncodingURIComponent
	EncodingNone         = pathparser.EncodingNone

	QueryModeDefault = pathparser.QueryModeDefault
	QueryModeStrict  = pathparser.QueryModeStrict
	QueryModeLoose   = pathparser.QueryModeLoose

	ParamKindURL   = pathparser.ParamKindURL
	ParamKindQuery = pathparser.ParamKindQuery
)

// TrailingSlashMode controls the trailing slash of built paths. It affects
// building only, never matching.
type TrailingSlashMode uint8

const (
	// TrailingSlashDefault keeps the trailing slash exactly as the route
	// patterns declare it.
	TrailingSlashDefault TrailingSlashMode = iota

	// TrailingSlashAlways appends a trailing slash when absent.
	TrailingSlashAlways

	// TrailingSlashNever strips the trailing slash except from the bare
	// root path "/".
	TrailingSlashNever
)

// String returns the option-style name of the mode.
func (m TrailingSlashMode) String() string {
	switch m {
	case TrailingSlashDefault:
		return "default"
	case TrailingSlashAlways:
		return "always"
	case TrailingSlashNever:
		return "never"
	default:
		return "unknown"
	}
}

// callConfig is the per-call configuration shared by Match and BuildPath.
// The pathparser fields travel to every segment parser; the rest apply at
// the tree level.
type callConfig struct {
	pathparser.Config

	trailingSlash TrailingSlashMode
	emitDefaults  bool
}

// defaultCallConfig is the shared configuration for calls made without
// options. It is never mutated after package init; option-carrying calls
// copy it first.
var defaultCallConfig = &callConfig{
	Config: pathparser.Config{StrongMatching: true},
}

// Option adjusts one Match or BuildPath call. Keys that only affect
// building are ignored by Match and vice versa, so callers may pass one
// options bag to both.
type Option func(*callConfig)

func newCallConfig(opts []Option) *callConfig {
	if len(opts) == 0 {
		return defaultCallConfig
	}
	cfg := *defaultCallConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &cfg
}

// segmentOptions converts the per-call configuration into pathparser
// options, with building forced to emit path parts only (query strings are
// merged at the tree level). The default configuration converts to nil so
// the hot path allocates nothing.
func (c *callConfig) segmentOptions() []pathparser.Option {
	if c == defaultCallConfig {
		return nil
	}
	return []pathparser.Option{pathparser.WithConfig(c.Config)}
}

// buildSegmentOptions is segmentOptions for BuildPath: declared query
// parameters never come from individual segments.
func (c *callConfig) buildSegmentOptions() []pathparser.Option {
	cfg := c.Config
	cfg.IgnoreSearch = true
	return []pathparser.Option{pathparser.WithConfig(cfg)}
}

// WithCaseSensitive makes static path tokens match byte for byte. Default
// false.
func WithCaseSensitive(enabled bool) Option {
	return func(c *callConfig) { c.CaseSensitive = enabled }
}

// WithStrictTrailingSlash makes the presence or absence of a trailing slash
// significant when matching and disables empty-path normalization. Default
// false.
func WithStrictTrailingSlash(enabled bool) Option {
	return func(c *callConfig) { c.StrictTrailingSlash = enabled }
}

// WithStrongMatching requires intermediate segments to stop at "/"
// boundaries. Disabling it lets a static token consume a prefix of a path
// segment. Default true.
func WithStrongMatching(enabled bool) Option {
	return func(c *callConfig) { c.StrongMatching = enabled }
}

// WithQueryParamsMode selects how query parameters no route declared are
// treated. Default QueryModeDefault.
func WithQueryParamsMode(mode QueryParamsMode) Option {
	return func(c *callConfig) { c.QueryMode = mode }
}

// WithQueryCodec sets the query-string formatting used by BuildPath.
func WithQueryCodec(codec QueryCodec) Option {
	return func(c *callConfig) { c.Codec = codec }
}

// WithURLParamsEncoding selects the URL parameter encoding for matching and
// building. Default EncodingDefault.
func WithURLParamsEncoding(enc Encoding) Option {
	return func(c *callConfig) { c.Encoding = enc }
}

// WithIgnoreSearch makes BuildPath emit the path part only, without a query
// string.
func WithIgnoreSearch(ignore bool) Option {
	return func(c *callConfig) { c.IgnoreSearch = ignore }
}

// WithTrailingSlashMode controls the trailing slash of built paths.
// Building only; matching ignores it.
func WithTrailingSlashMode(mode TrailingSlashMode) Option {
	return func(c *callConfig) { c.trailingSlash = mode }
}

// WithEmitDefaults makes BuildPath emit query parameters even when their
// values equal the route's declared defaults. Default false: default-valued
// query parameters are omitted.
func WithEmitDefaults(emit bool) Option {
	return func(c *callConfig) { c.emitDefaults = emit }
}

// treeConfig carries tree construction settings collected from TreeOptions.
type treeConfig struct {
	validateNames bool
	logger        *slog.Logger
	diagnostics   DiagnosticHandler
}

// TreeOption configures tree construction.
type TreeOption func(*treeConfig)

func newTreeConfig(opts []TreeOption) *treeConfig {
	cfg := &treeConfig{
		validateNames: true,
		logger:        noopLogger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithNameValidation enables or disables route-name validation. Disable it
// only for trusted, internally generated definitions; the tree emits a
// DiagValidationSkipped diagnostic when disabled.
func WithNameValidation(enabled bool) TreeOption {
	return func(cfg *treeConfig) { cfg.validateNames = enabled }
}

// WithLogger sets the structured logger used for construction debug events.
// The tree never logs on error paths. A nil logger restores the no-op
// default.
func WithLogger(logger *slog.Logger) TreeOption {
	return func(cfg *treeConfig) {
		if logger == nil {
			logger = noopLogger
		}
		cfg.logger = logger
	}
}

// WithDiagnostics sets the handler that receives construction diagnostics.
func WithDiagnostics(handler DiagnosticHandler) TreeOption {
	return func(cfg *treeConfig) { cfg.diagnostics = handler }
}

// noopLogger discards every record without formatting work.
var noopLogger = slog.New(noopHandler{})

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (noopHandler) Handle(context.Context, slog.Record) error { return nil }
func (noopHandler) WithAttrs([]slog.Attr) slog.Handler        { return noopHandler{} }
func (noopHandler) WithGroup(string) slog.Handler             { return noopHandler{} }
