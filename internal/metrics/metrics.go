// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icanmatch_recommendation_fetches_total",
			Help: "Recommendation batches produced, by outcome",
		},
		[]string{"outcome"}, // "remote", "fallback", "failed"
	)

	RecommendationDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "icanmatch_recommendation_dropped_entries_total",
			Help: "Model output entries discarded as malformed, unresolvable or duplicate",
		},
	)

	SwipeDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icanmatch_swipe_decisions_total",
			Help: "Swipe decisions applied to a stack",
		},
		[]string{"kind", "direction"},
	)

	SideEffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icanmatch_side_effect_failures_total",
			Help: "Cart or notification side effects that failed after a right swipe",
		},
		[]string{"kind"},
	)

	GeminiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "icanmatch_gemini_request_duration_seconds",
			Help:    "Latency of text generation calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "icanmatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "icanmatch_active_sessions",
			Help: "Swipe sessions currently held in memory",
		},
	)

	AdvisorReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "icanmatch_advisor_replies_total",
			Help: "Career advice and talent matching replies, by source",
		},
		[]string{"operation", "source"}, // source: "remote", "mock", "apology"
	)
)
