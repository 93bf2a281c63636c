// ABOUTME: Prometheus counters for cache hits, fetch outcomes and invalidations.
// ABOUTME: Registered on the default registry at package init.
package query

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "query",
		Name:      "cache_hits_total",
		Help:      "Fetches served from a fresh cache entry without a request.",
	})

	fetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "query",
		Name:      "fetches_total",
		Help:      "Settled fetches by key and result (success, error, superseded).",
	}, []string{"key", "result"})

	dedupedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "query",
		Name:      "deduplicated_total",
		Help:      "Fetches that joined an in-flight request for the same key.",
	})

	invalidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "query",
		Name:      "invalidations_total",
		Help:      "Cache entries marked stale by invalidation.",
	}, []string{"key"})

	mutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wellness",
		Subsystem: "query",
		Name:      "mutations_total",
		Help:      "Mutations by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(cacheHits, fetchesTotal, dedupedTotal, invalidationsTotal, mutationsTotal)
}
