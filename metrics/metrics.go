// Package metrics defines Prometheus collectors for the translation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts cache hits per tier ("memory", "redis", "store").
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingo_cache_hits_total",
		Help: "Translation cache hits by tier",
	}, []string{"tier"})

	// CacheMisses counts full cache misses (all tiers cold).
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingo_cache_misses_total",
		Help: "Translation cache misses across all tiers",
	})

	// TranslationsTotal counts served translations by source
	// ("cache", "dictionary", "provider").
	TranslationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingo_translations_total",
		Help: "Translations served by result source",
	}, []string{"source"})

	// ProviderRequests counts provider calls by provider and outcome
	// ("success", "error").
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingo_provider_requests_total",
		Help: "Remote provider requests by outcome",
	}, []string{"provider", "outcome"})

	// ProviderDuration observes provider call latency.
	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lingo_provider_request_duration_seconds",
		Help:    "Remote provider request duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	// RateLimitRejections counts requests refused by the rate limiter.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingo_rate_limit_rejections_total",
		Help: "Requests refused because the provider window was exhausted",
	}, []string{"provider"})

	// StoreSweepDeleted counts entries removed by the expiry sweeper.
	StoreSweepDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingo_store_sweep_deleted_total",
		Help: "Expired cache entries deleted by the sweeper",
	})
)
