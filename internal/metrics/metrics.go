// Package metrics exports timer reports in the Prometheus text format.
package metrics

import (
	"strconv"

	"github.com/MeKo-Tech/seqtimer/pkg/seqtimer"
	"github.com/prometheus/client_golang/prometheus"
)

// Exporter turns the latest report into gauges on a private registry.
type Exporter struct {
	registry *prometheus.Registry

	eventDuration *prometheus.GaugeVec
	eventShare    *prometheus.GaugeVec
	totalDuration prometheus.Gauge
	unfinished    prometheus.Gauge
}

// NewExporter creates an exporter whose metric names start with namespace.
func NewExporter(namespace string) *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		eventDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "event_duration_seconds",
				Help:      "Wall-clock duration of each finished event",
			},
			[]string{"event", "rank"}, // rank: position in the report, 1 = most expensive
		),
		eventShare: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "event_share_ratio",
				Help:      "Share of each event in the total duration",
			},
			[]string{"event", "rank"},
		),
		totalDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "total_duration_seconds",
				Help:      "Sum of all finished event durations",
			},
		),
		unfinished: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "unfinished_events",
				Help:      "1 if an event was still running when the report was taken",
			},
		),
	}

	e.registry.MustRegister(e.eventDuration, e.eventShare, e.totalDuration, e.unfinished)
	return e
}

// Observe replaces the exported values with r.
func (e *Exporter) Observe(r seqtimer.Report) {
	e.eventDuration.Reset()
	e.eventShare.Reset()

	for i, row := range r.Rows {
		rank := strconv.Itoa(i + 1)
		e.eventDuration.WithLabelValues(row.Name, rank).Set(row.Duration.Seconds())

		share := 0.0
		if r.Total > 0 {
			share = float64(row.Duration) / float64(r.Total)
		}
		e.eventShare.WithLabelValues(row.Name, rank).Set(share)
	}

	e.totalDuration.Set(r.Total.Seconds())
	if r.HasUnfinished {
		e.unfinished.Set(1)
	} else {
		e.unfinished.Set(0)
	}
}

// Gatherer exposes the registry, e.g. for promhttp or tests.
func (e *Exporter) Gatherer() prometheus.Gatherer {
	return e.registry
}

// WriteTextfile writes the metrics for the node exporter's textfile collector.
func (e *Exporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, e.registry)
}
