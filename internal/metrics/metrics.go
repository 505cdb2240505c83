// Package metrics exposes the tracker's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the tracker updates. One instance is wired
// through the cycle runner.
type Metrics struct {
	Cycles          prometheus.Counter
	CycleErrors     prometheus.Counter
	PostingsFetched *prometheus.CounterVec
	NewPostings     prometheus.Counter
	SeenIDs         prometheus.Gauge
}

// New registers the tracker's collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Cycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "jobtrack_cycles_total",
			Help: "Completed fetch-and-dedup cycles.",
		}),
		CycleErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "jobtrack_cycle_errors_total",
			Help: "Cycles that failed before producing a result.",
		}),
		PostingsFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtrack_postings_fetched_total",
			Help: "Normalized postings fetched, by source kind.",
		}, []string{"source"}),
		NewPostings: factory.NewCounter(prometheus.CounterOpts{
			Name: "jobtrack_new_postings_total",
			Help: "Postings surfaced for the first time.",
		}),
		SeenIDs: factory.NewGauge(prometheus.GaugeOpts{
			Name: "jobtrack_seen_ids",
			Help: "Distinct posting ids recorded in the seen store.",
		}),
	}
}
