package ogcard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records generation outcomes and per-step latency.
type Metrics struct {
	generations *prometheus.CounterVec
	steps       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ogcard_generations_total",
				Help: "Total number of image generations by outcome",
			},
			[]string{"status", "kind"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ogcard_step_duration_seconds",
				Help:    "Duration of each pipeline step",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"step"},
		),
	}
	reg.MustRegister(m.generations, m.steps)
	return m
}

func (m *Metrics) observeStep(step Step, d time.Duration) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(step.String()).Observe(d.Seconds())
}

func (m *Metrics) observeResult(r Result) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(r.Status.String(), KindName(r.Err)).Inc()
}
