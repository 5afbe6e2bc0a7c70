package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docgen", Name: "documents_generated_total", Help: "Number of documents generated by template type."},
		[]string{"template"},
	)
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docgen", Name: "cache_hits_total", Help: "Number of cached list responses served."},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docgen", Name: "cache_misses_total", Help: "Number of list requests that fell through to the store."},
	)
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docgen", Name: "provider_calls_total", Help: "Number of external document provider calls by outcome."},
		[]string{"op", "outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docgen", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docgen", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentsGenerated)
	reg.MustRegister(CacheHits)
	reg.MustRegister(CacheMisses)
	reg.MustRegister(ProviderCalls)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
