// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "msroute_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "msroute_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// CriteriaQueries counts filtered reads; kind is "list" or "count".
	CriteriaQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "msroute_criteria_queries_total",
		Help: "Criteria list and count queries by entity.",
	}, []string{"entity", "kind"})

	EntityWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "msroute_entity_writes_total",
		Help: "Successful entity writes by entity and action.",
	}, []string{"entity", "action"})

	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "msroute_event_publish_failures_total",
		Help: "Entity events that could not be handed to the broker.",
	})
)
