package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CallsTotal tracks orchestration calls by terminal outcome
	CallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outcall_calls_total",
			Help: "Total number of orchestration calls by terminal outcome",
		},
		[]string{"outcome"},
	)

	// AttemptsTotal tracks transport attempts by classification
	AttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outcall_attempts_total",
			Help: "Total number of transport attempts by classification",
		},
		[]string{"classification"},
	)

	// RetriesTotal tracks scheduled retries
	RetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outcall_retries_total",
			Help: "Total number of scheduled retries",
		},
	)

	// CallDuration tracks end-to-end orchestration call duration
	CallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outcall_call_duration_seconds",
			Help:    "End-to-end orchestration call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// BackoffWait tracks individual backoff waits
	BackoffWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outcall_backoff_wait_seconds",
			Help:    "Backoff wait duration before a retry in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
