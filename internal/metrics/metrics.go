// Package metrics provides Prometheus metrics for starsearch.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"starsearch/pkg/stream"
)

// Combined load outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeCancelled = "cancelled"
)

var (
	// TermsFiltered counts raw terms dropped for being too short.
	TermsFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "starsearch",
			Name:      "terms_filtered_total",
			Help:      "Total number of search terms dropped by the length filter",
		},
	)

	// LookupsDispatched counts lookups started after debouncing.
	LookupsDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "starsearch",
			Name:      "lookups_dispatched_total",
			Help:      "Total number of character lookups dispatched",
		},
	)

	// LookupFailures counts lookups that failed. Cancelled lookups are not failures.
	LookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "starsearch",
			Name:      "lookup_failures_total",
			Help:      "Total number of failed character lookups",
		},
	)

	// LookupsCancelled counts lookups released before they finished.
	LookupsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "starsearch",
			Name:      "lookups_cancelled_total",
			Help:      "Total number of character lookups cancelled before finishing",
		},
	)

	// LookupDuration measures the latency of finished lookups.
	LookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "starsearch",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of character lookups in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// CombinedLoads counts combined characters+planets loads by outcome.
	CombinedLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "starsearch",
			Name:      "combined_loads_total",
			Help:      "Total number of combined loads",
		},
		[]string{"outcome"},
	)

	// Loading tracks the aggregate loading state (1 = loading, 0 = idle).
	Loading = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "starsearch",
			Name:      "loading",
			Help:      "Aggregate loading state (1 = all sources loading, 0 = otherwise)",
		},
	)
)

// Outcome classifies the terminal error of a run.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case stream.IsReleased(err):
		return OutcomeCancelled
	default:
		return OutcomeFailure
	}
}

// RecordLookup records the end of a lookup. A cancelled lookup is counted
// on its own and leaves the failure counter and the latency alone.
func RecordLookup(seconds float64, err error) {
	switch Outcome(err) {
	case OutcomeCancelled:
		LookupsCancelled.Inc()
		return
	case OutcomeFailure:
		LookupFailures.Inc()
	}
	LookupDuration.Observe(seconds)
}

// RecordCombined records the end of a combined load.
func RecordCombined(err error) {
	CombinedLoads.WithLabelValues(Outcome(err)).Inc()
}

// SetLoading sets the aggregate loading gauge.
func SetLoading(loading bool) {
	if loading {
		Loading.Set(1)
		return
	}
	Loading.Set(0)
}
