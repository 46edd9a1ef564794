package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hygall_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheResults counts cache lookups by outcome (hit or miss).
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hygall_cache_results_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"key_prefix", "outcome"})

	// UnlockAttempts counts unlock-code verifications by outcome.
	UnlockAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hygall_unlock_attempts_total",
		Help: "Total number of unlock code verification attempts by outcome",
	}, []string{"scope", "outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hygall_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// fiberprometheus registers its collectors in the default registry, where a
// second registration panics, so the middleware is process-wide.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware wraps the fiberprometheus middleware as a Fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
