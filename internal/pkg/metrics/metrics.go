package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QueryAttempts counts individual endpoint attempts by chain and
	// outcome ("ok", "error").
	QueryAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_query_attempts_total",
			Help: "RPC query attempts per chain and outcome.",
		},
		[]string{"chain", "outcome"},
	)

	// QueriesExhausted counts logical calls that failed on every
	// endpoint across all retry passes.
	QueriesExhausted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_queries_exhausted_total",
			Help: "Logical calls that exhausted all endpoints and passes.",
		},
		[]string{"chain"},
	)

	// QueriesSuppressed counts exhausted calls that resolved silently
	// because the target was on the suppression list.
	QueriesSuppressed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_queries_suppressed_total",
			Help: "Exhausted calls resolved to absent via the suppression list.",
		},
		[]string{"chain"},
	)

	// BatchCallSize observes the number of logical calls per multicall
	// round trip.
	BatchCallSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scanner_batch_call_size",
			Help:    "Logical calls folded into one multicall round trip.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"chain"},
	)

	// BatchPartialFailures counts per-call failures inside otherwise
	// successful batches.
	BatchPartialFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_batch_partial_failures_total",
			Help: "Calls omitted from batch results due to per-call failure.",
		},
		[]string{"chain"},
	)

	// PriceCacheHits and PriceCacheMisses track the oracle price cache.
	PriceCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scanner_price_cache_hits_total",
			Help: "Price lookups served from the TTL cache.",
		},
	)
	PriceCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scanner_price_cache_misses_total",
			Help: "Price lookups that went to the oracle backend.",
		},
	)
)

// MustRegisterMetrics registers all scanner collectors with the default
// prometheus registry. Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		QueryAttempts,
		QueriesExhausted,
		QueriesSuppressed,
		BatchCallSize,
		BatchPartialFailures,
		PriceCacheHits,
		PriceCacheMisses,
	)
}
