package collector

import (
	"mapstats/internal/shared/metrics"
)

var (
	metricCyclesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "cycles_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricCycleDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "cycle_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricProbesTotal counts individual server probes by outcome:
	// success, failure or skipped (cooldown window).
	metricProbesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "probes_total",
		},
		[]string{"outcome"},
	)

	metricObservationsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "observations_total",
		},
	)
)
