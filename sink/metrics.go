package sink

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports the counters of every StatsProvider sink in a Registry
// as prometheus metrics, labelled by sink name.
type Collector struct {
	reg *Registry

	sinks    *prometheus.Desc
	written  *prometheus.Desc
	filtered *prometheus.Desc
	failed   *prometheus.Desc
	blocked  *prometheus.Desc
	dropped  *prometheus.Desc
}

// NewCollector returns a Collector for reg. namespace prefixes every metric
// name and may be empty.
func NewCollector(reg *Registry, namespace string) *Collector {
	name := func(n string) string {
		return prometheus.BuildFQName(namespace, "sinklog", n)
	}
	return &Collector{
		reg: reg,
		sinks: prometheus.NewDesc(name("sinks"),
			"Number of registered sinks.", nil, nil),
		written: prometheus.NewDesc(name("written_total"),
			"Messages written by the sink.", []string{"sink"}, nil),
		filtered: prometheus.NewDesc(name("filtered_total"),
			"Messages skipped by the sink's level.", []string{"sink"}, nil),
		failed: prometheus.NewDesc(name("failed_total"),
			"Writes that returned an error.", []string{"sink"}, nil),
		blocked: prometheus.NewDesc(name("blocked_total"),
			"Writers that waited for buffer space.", []string{"sink"}, nil),
		dropped: prometheus.NewDesc(name("dropped_total"),
			"Messages discarded by a buffering sink.", []string{"sink", "level"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sinks
	ch <- c.written
	ch <- c.filtered
	ch <- c.failed
	ch <- c.blocked
	ch <- c.dropped
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	sinks := c.reg.Sinks()
	ch <- prometheus.MustNewConstMetric(c.sinks, prometheus.GaugeValue, float64(len(sinks)))

	seen := make(map[string]int, len(sinks))
	for _, s := range sinks {
		sp, ok := s.(StatsProvider)
		if !ok {
			continue
		}
		label := nameOf(s)
		// duplicate names would make the registry reject the whole gather
		if n := seen[label]; n > 0 {
			seen[label] = n + 1
			label = label + "#" + strconv.Itoa(n)
		} else {
			seen[label] = 1
		}

		snap := sp.Stats().Snapshot()
		ch <- prometheus.MustNewConstMetric(c.written, prometheus.CounterValue, float64(snap.Written), label)
		ch <- prometheus.MustNewConstMetric(c.filtered, prometheus.CounterValue, float64(snap.Filtered), label)
		ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(snap.Failed), label)
		ch <- prometheus.MustNewConstMetric(c.blocked, prometheus.CounterValue, float64(snap.Blocked), label)
		for level, n := range snap.Dropped {
			ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(n), label, level.String())
		}
	}
}
