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

import "github.com/prometheus/client_golang/prometheus"

// collector exposes every cache in a Registry as Prometheus metrics. Values
// are read from Metrics snapshots at scrape time, so the cache hot path
// carries no Prometheus code.
type collector struct {
	registry  *Registry
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
	size      *prometheus.Desc
	maxSize   *prometheus.Desc
}

// Collector returns a prometheus.Collector exposing per-cache counters and
// gauges labeled by registered cache name:
//
//	prometheus.MustRegister(registry.Collector())
func (r *Registry) Collector() prometheus.Collector {
	labels := []string{"cache"}
	return &collector{
		registry:  r,
		hits:      prometheus.NewDesc("routetree_cache_hits_total", descHits, labels, nil),
		misses:    prometheus.NewDesc("routetree_cache_misses_total", descMisses, labels, nil),
		evictions: prometheus.NewDesc("routetree_cache_evictions_total", descEvictions, labels, nil),
		size:      prometheus.NewDesc("routetree_cache_size", descSize, labels, nil),
		maxSize:   prometheus.NewDesc("routetree_cache_max_size", descMaxSize, labels, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.size
	ch <- c.maxSize
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	for _, name := range c.registry.Names() {
		store, ok := c.registry.Cache(name)
		if !ok {
			continue
		}
		m := store.Metrics()
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(m.Hits), name)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(m.Misses), name)
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(m.Evictions), name)
		ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(m.Size), name)
		ch <- prometheus.MustNewConstMetric(c.maxSize, prometheus.GaugeValue, float64(m.MaxSize), name)
	}
}
