// Package metrics exposes poll cycle counters for Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jpalmerr/climateboard/reading"
)

// Metrics holds the collectors updated after every cycle.
type Metrics struct {
	PollsTotal      *prometheus.CounterVec
	PollDuration    prometheus.Histogram
	LastSuccessTime prometheus.Gauge
}

// New registers the collectors on reg. Each board uses its own registry so
// several boards can live in one process.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		PollsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "climateboard_polls_total",
				Help: "Total number of poll cycles by outcome",
			},
			[]string{"outcome"},
		),
		PollDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "climateboard_poll_duration_seconds",
				Help:    "Time taken by the HTTP request of a poll cycle",
				Buckets: prometheus.DefBuckets,
			},
		),
		LastSuccessTime: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "climateboard_last_success_timestamp_seconds",
				Help: "Unix time of the last cycle that rendered a reading",
			},
		),
	}
}

// Observe records one cycle. outcome is a reading.Kind value.
func (m *Metrics) Observe(outcome string, latency time.Duration, checkedAt time.Time) {
	m.PollsTotal.WithLabelValues(outcome).Inc()
	m.PollDuration.Observe(latency.Seconds())
	if outcome == reading.KindOK {
		m.LastSuccessTime.Set(float64(checkedAt.Unix()))
	}
}
