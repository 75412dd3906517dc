// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the API's prometheus collectors. Registration happens
// once inside New via promauto.
type Metrics struct {
	SubmissionsAccepted  *prometheus.CounterVec
	SubmissionsDuplicate *prometheus.CounterVec
	SubmissionsRejected  *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

// New registers and returns the collectors. kind labels distinguish
// votes from survey responses.
func New(namespace string) *Metrics {
	return &Metrics{
		SubmissionsAccepted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_accepted_total",
				Help:      "Total number of recorded votes and responses",
			},
			[]string{"kind"},
		),
		SubmissionsDuplicate: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_duplicate_total",
				Help:      "Total number of submissions blocked by the duplicate guard",
			},
			[]string{"kind"},
		),
		SubmissionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_rejected_total",
				Help:      "Total number of submissions rejected by validation",
			},
			[]string{"kind"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
