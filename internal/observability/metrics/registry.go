// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion metrics track corpus population.
var (
	// ReposIngestedTotal counts ingested records by outcome ("embedded" or "skipped")
	ReposIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repos_ingested_total",
			Help: "Total repository records processed by ingestion, by outcome",
		},
		[]string{"outcome"},
	)

	// IngestPagesTotal counts fetched source pages by outcome ("ok" or "error")
	IngestPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_pages_total",
			Help: "Total source pages fetched during ingestion, by outcome",
		},
		[]string{"outcome"},
	)

	// IngestDuration measures the duration of a full ingestion batch in seconds
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_duration_seconds",
			Help:    "Duration of a full ingestion batch in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		},
	)

	// ReposTotal tracks the total number of records in the store
	ReposTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "repos_total",
			Help: "Total number of repository records in the store",
		},
	)
)

// Query metrics track similarity searches.
var (
	// CandidateSelectionsTotal counts candidate selections by mode ("filtered" or "fallback")
	CandidateSelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_selections_total",
			Help: "Total candidate selections, by mode",
		},
		[]string{"mode"},
	)

	// CandidatesCompared measures the size of the candidate set per query
	CandidatesCompared = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "candidates_compared",
			Help:    "Number of candidates scored per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	// QueryDuration measures end-to-end query duration in seconds
	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "query_duration_seconds",
			Help:    "End-to-end similarity query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// EmbeddingRequestsTotal counts embedding provider calls by outcome
	EmbeddingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_requests_total",
			Help: "Total embedding provider calls, by outcome",
		},
		[]string{"outcome"},
	)
)
