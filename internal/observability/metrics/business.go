package metrics

import "time"

// RecordRepoIngested records the outcome of ingesting one repository record.
func RecordRepoIngested(embedded bool) {
	outcome := "embedded"
	if !embedded {
		outcome = "skipped"
	}
	ReposIngestedTotal.WithLabelValues(outcome).Inc()
}

// RecordPageFetch records the outcome of fetching one source page.
func RecordPageFetch(success bool) {
	outcome := "ok"
	if !success {
		outcome = "error"
	}
	IngestPagesTotal.WithLabelValues(outcome).Inc()
}

// RecordIngestDuration records the duration of a full ingestion batch.
func RecordIngestDuration(duration time.Duration) {
	IngestDuration.Observe(duration.Seconds())
}

// UpdateReposTotal updates the stored-record gauge.
// Updated after each ingestion batch to reflect the current corpus size.
func UpdateReposTotal(count int64) {
	ReposTotal.Set(float64(count))
}

// RecordCandidateSelection records one candidate selection and its mode.
// Mode is "filtered" when the metadata filters produced the candidate set
// and "fallback" when the filters matched nothing and the full embedded
// corpus was used instead.
func RecordCandidateSelection(mode string, candidates int) {
	CandidateSelectionsTotal.WithLabelValues(mode).Inc()
	CandidatesCompared.Observe(float64(candidates))
}

// RecordQueryDuration records the end-to-end duration of one similarity query.
func RecordQueryDuration(duration time.Duration) {
	QueryDuration.Observe(duration.Seconds())
}

// RecordEmbeddingRequest records the outcome of one embedding provider call.
func RecordEmbeddingRequest(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	EmbeddingRequestsTotal.WithLabelValues(outcome).Inc()
}
