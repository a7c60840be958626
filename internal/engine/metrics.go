package engine

import (
	"mapstats/internal/shared/metrics"
)

var (
	// metricQueriesTotal counts chart queries by outcome. error_code is
	// empty for successful queries, including the explicit empty "no data"
	// result.
	metricQueriesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubEngine,
			Name:      "queries_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricQueryDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubEngine,
			Name:      "query_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)

	metricQueryCacheTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubEngine,
			Name:      "query_cache_total",
		},
		[]string{"result"},
	)
)
