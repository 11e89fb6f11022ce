// SPDX-License-Identifier: EPL-2.0

// Package metrics exposes software backend resource usage to Prometheus.
package metrics

import (
	"github.com/ik5/audvox/al/soft"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "audvox"

// StatsFunc returns a fresh snapshot on every scrape.
type StatsFunc func() soft.Stats

// Collector reports a soft.Device's Stats. Gauges follow live handles,
// counters follow deletions and uploaded bytes.
type Collector struct {
	stats StatsFunc

	buffers        *prometheus.Desc
	sources        *prometheus.Desc
	playing        *prometheus.Desc
	buffersDeleted *prometheus.Desc
	sourcesDeleted *prometheus.Desc
	bytesUploaded  *prometheus.Desc
}

// NewCollector creates a collector with constant labels, typically the
// device name.
func NewCollector(stats StatsFunc, labels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "backend", name), help, nil, labels)
	}

	return &Collector{
		stats:          stats,
		buffers:        desc("buffers", "Live buffers across all contexts."),
		sources:        desc("sources", "Live sources across all contexts."),
		playing:        desc("sources_playing", "Sources currently playing."),
		buffersDeleted: desc("buffers_deleted_total", "Buffers deleted since the device was opened."),
		sourcesDeleted: desc("sources_deleted_total", "Sources deleted since the device was opened."),
		bytesUploaded:  desc("uploaded_bytes_total", "PCM bytes uploaded into buffers."),
	}
}

// Register creates a collector for dev and registers it with reg.
func Register(reg prometheus.Registerer, dev *soft.Device) (*Collector, error) {
	c := NewCollector(dev.Stats, prometheus.Labels{"device": dev.Name()})
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.buffers
	ch <- c.sources
	ch <- c.playing
	ch <- c.buffersDeleted
	ch <- c.sourcesDeleted
	ch <- c.bytesUploaded
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.stats()

	ch <- prometheus.MustNewConstMetric(c.buffers, prometheus.GaugeValue, float64(st.Buffers))
	ch <- prometheus.MustNewConstMetric(c.sources, prometheus.GaugeValue, float64(st.Sources))
	ch <- prometheus.MustNewConstMetric(c.playing, prometheus.GaugeValue, float64(st.Playing))
	ch <- prometheus.MustNewConstMetric(c.buffersDeleted, prometheus.CounterValue, float64(st.BuffersDeleted))
	ch <- prometheus.MustNewConstMetric(c.sourcesDeleted, prometheus.CounterValue, float64(st.SourcesDeleted))
	ch <- prometheus.MustNewConstMetric(c.bytesUploaded, prometheus.CounterValue, float64(st.BytesUploaded))
}
