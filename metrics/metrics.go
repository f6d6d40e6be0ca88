package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "streetsearch"

var (
	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of searches by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	searchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of records returned per search",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 10, 20},
		},
		[]string{"mode"},
	)

	softDeletesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "soft_deletes_total",
			Help:      "Total number of soft delete requests by outcome",
		},
		[]string{"outcome"},
	)

	ingestedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_records_total",
			Help:      "Total number of records written by CSV ingestion",
		},
	)

	skippedRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_rows_total",
			Help:      "Total number of malformed CSV rows skipped during ingestion",
		},
	)
)

const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

func init() {
	prometheus.MustRegister(searchesTotal)
	prometheus.MustRegister(searchResults)
	prometheus.MustRegister(softDeletesTotal)
	prometheus.MustRegister(ingestedRecordsTotal)
	prometheus.MustRegister(skippedRowsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
}

// ObserveSearch records a finished search. results is ignored unless outcome is OutcomeSuccess.
func ObserveSearch(mode string, outcome string, results int) {
	searchesTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == OutcomeSuccess {
		searchResults.WithLabelValues(mode).Observe(float64(results))
	}
}

func ObserveSoftDelete(outcome string) {
	softDeletesTotal.WithLabelValues(outcome).Inc()
}

func ObserveIngestion(loaded int, skipped int) {
	ingestedRecordsTotal.Add(float64(loaded))
	skippedRowsTotal.Add(float64(skipped))
}
