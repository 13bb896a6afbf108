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

package keycache

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// config carries cache construction settings collected from Options.
type config struct {
	name          string
	meterProvider metric.MeterProvider
}

// Option configures a Cache at construction time.
type Option func(*config)

func newCacheConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithName labels the cache instance. The name appears as the "cache.name"
// attribute on OpenTelemetry instruments and as the "cache" label when the
// cache is exposed through a Registry Collector.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithMeterProvider enables OpenTelemetry instrumentation for the cache
// using the given provider. Without it the cache records no telemetry.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) {
		cfg.meterProvider = provider
	}
}

// registryConfig carries Registry construction settings.
type registryConfig struct {
	tracerProvider trace.TracerProvider
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*registryConfig)

// WithTracerProvider sets the provider used for invalidation-broadcast
// spans. Defaults to the global provider.
func WithTracerProvider(provider trace.TracerProvider) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.tracerProvider = provider
	}
}

// RegisterOption configures one cache registration.
type RegisterOption func(*registration)

// WithRouteMatcher gives a registered cache a targeted invalidation rule:
// when Registry.InvalidateForRoutes runs, only keys the matcher selects are
// dropped instead of clearing the whole cache.
func WithRouteMatcher(matcher RouteMatcher) RegisterOption {
	return func(reg *registration) {
		reg.matcher = matcher
	}
}
