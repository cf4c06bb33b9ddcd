// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryDuration observes every statement issued through a database
	// session, labelled query or exec.
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_db_query_duration_seconds",
		Help:    "Duration of catalog database statements.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// Writes counts insert operations by record kind and outcome
	// (ok, invalid, conflict, error).
	Writes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_writes_total",
		Help: "Catalog insert operations by kind and outcome.",
	}, []string{"kind", "outcome"})
)
