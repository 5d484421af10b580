package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports Manager counters as Prometheus metrics.
type Collector struct {
	manager   *Manager
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
	size      *prometheus.Desc
	maxSize   *prometheus.Desc
}

// NewCollector returns a collector reading m on every scrape.
func NewCollector(m *Manager) *Collector {
	labels := []string{"cache"}
	return &Collector{
		manager:   m,
		hits:      prometheus.NewDesc("banner_cache_hits_total", "Cache lookups served from memory.", labels, nil),
		misses:    prometheus.NewDesc("banner_cache_misses_total", "Cache lookups that had to recompute.", labels, nil),
		evictions: prometheus.NewDesc("banner_cache_evictions_total", "Entries dropped because the cache was full.", labels, nil),
		size:      prometheus.NewDesc("banner_cache_entries", "Entries currently stored.", labels, nil),
		maxSize:   prometheus.NewDesc("banner_cache_max_entries", "Configured capacity.", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.size
	ch <- c.maxSize
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for name, s := range c.manager.Stats() {
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits), name)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses), name)
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions), name)
		ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(s.Size), name)
		ch <- prometheus.MustNewConstMetric(c.maxSize, prometheus.GaugeValue, float64(s.MaxSize), name)
	}
}

var _ prometheus.Collector = (*Collector)(nil)
