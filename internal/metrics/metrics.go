// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AskRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procure_ask_requests_total",
			Help: "Total number of ask requests by profile and outcome",
		},
		[]string{"profile", "status"},
	)

	AskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "procure_ask_duration_seconds",
			Help:    "End-to-end duration of ask requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"profile"},
	)

	SourceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "procure_source_query_duration_seconds",
			Help: "Duration of a single context source query in seconds",
		},
		[]string{"source"},
	)

	LLMTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procure_llm_tokens_total",
			Help: "Tokens consumed by LLM calls",
		},
		[]string{"provider", "direction"},
	)

	EntriesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procure_entries_created_total",
			Help: "Records created through entry and extraction endpoints",
		},
		[]string{"kind"},
	)
)
