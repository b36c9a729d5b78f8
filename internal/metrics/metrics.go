// Package metrics provides Prometheus metrics for the tradeflow service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks API requests by route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradeflow",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks API latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tradeflow",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// InferenceRequestsTotal tracks calls to the inference service by outcome
	InferenceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradeflow",
			Subsystem: "inference",
			Name:      "requests_total",
			Help:      "Total number of inference requests by document type and status",
		},
		[]string{"document_type", "status"},
	)

	// InferenceDuration tracks inference round trip time in seconds
	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tradeflow",
			Subsystem: "inference",
			Name:      "request_duration_seconds",
			Help:      "Duration of inference requests in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"document_type"},
	)

	// VerificationAccuracy tracks accuracy percentages produced by re-verification
	VerificationAccuracy = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tradeflow",
			Subsystem: "verification",
			Name:      "accuracy_percent",
			Help:      "Accuracy of stored documents against a fresh inference, in percent",
			Buckets:   []float64{10, 25, 50, 75, 90, 95, 99, 100},
		},
	)

	// ExportRecordsTotal tracks exported rows by whether an import line was matched
	ExportRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradeflow",
			Subsystem: "export",
			Name:      "records_total",
			Help:      "Total number of exported purchase order rows by import match outcome",
		},
		[]string{"matched"},
	)
)
