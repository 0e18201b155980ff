// Package metrics provides Prometheus metrics collection for the flock service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// AllocationOperationsTotal tracks allocate, transfer and update calls by outcome.
	AllocationOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocation_operations_total",
			Help: "Total number of bird allocation operations",
		},
		[]string{"operation", "status"},
	)

	// AllocationDuration tracks the duration of allocation transactions.
	AllocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "allocation_duration_seconds",
			Help:    "Bird allocation transaction duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"operation"},
	)

	// BirdsMovedTotal tracks birds moved by allocation operations.
	BirdsMovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birds_moved_total",
			Help: "Total number of birds moved into or between houses",
		},
		[]string{"operation"},
	)

	// CacheOperationsTotal counts operations per in-process cache.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize is refreshed by each cache's sweeper.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Entries held by the cache",
		},
		[]string{"cache"},
	)

	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Maximum entries the cache holds",
		},
		[]string{"cache"},
	)

	// OptimizerRequestsTotal tracks calls to the feed optimizer.
	OptimizerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_optimizer_requests_total",
			Help: "Total number of feed optimizer requests",
		},
		[]string{"status"},
	)

	// OptimizerDuration tracks feed optimizer latency.
	OptimizerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_optimizer_duration_seconds",
			Help:    "Feed optimizer request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SchedulerRunsTotal tracks scheduled job runs.
	SchedulerRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_job_runs_total",
			Help: "Total number of scheduled job runs",
		},
		[]string{"job", "status"},
	)

	// LowStockItems tracks stock items at or below threshold across all farms.
	LowStockItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stock_low_items",
			Help: "Number of stock items at or below their threshold",
		},
	)

	// LogEntriesTotal tracks persisted request and audit entries by outcome.
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_entries_total",
			Help: "Total number of log entries handled by the log sink",
		},
		[]string{"result"},
	)

	// RateLimitedTotal tracks requests rejected by the rate limiter per bucket kind.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)

	// CircuitBreakerState tracks breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// unmatchedRoute labels requests that hit no route, keeping raw paths out of
// the label set.
const unmatchedRoute = "unmatched"

// PrometheusMiddleware records request count and latency per route template,
// e.g. "/api/v1/batches/:id".
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}

// RecordAllocation records metrics for an allocation operation. Birds are
// only counted for successful operations.
func RecordAllocation(operation string, duration time.Duration, birds int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	AllocationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	AllocationOperationsTotal.WithLabelValues(operation, status).Inc()
	if err == nil && birds > 0 {
		BirdsMovedTotal.WithLabelValues(operation).Add(float64(birds))
	}
}

// RecordCacheOperation counts one operation on the named cache.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics publishes the named cache's size and capacity.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// RecordOptimizerRequest records a feed optimizer call.
func RecordOptimizerRequest(duration time.Duration, status string) {
	OptimizerDuration.Observe(duration.Seconds())
	OptimizerRequestsTotal.WithLabelValues(status).Inc()
}

// RecordSchedulerRun records the outcome of a scheduled job.
func RecordSchedulerRun(job string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SchedulerRunsTotal.WithLabelValues(job, status).Inc()
}

// SetLowStockItems sets the low stock gauge.
func SetLowStockItems(n int) {
	LowStockItems.Set(float64(n))
}

// RecordLogEntries adds n entries to the given outcome: written, dropped or failed.
func RecordLogEntries(result string, n int) {
	LogEntriesTotal.WithLabelValues(result).Add(float64(n))
}

// RecordRateLimited counts a rejected request. scope is ip, user or farm.
func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}

// SetCircuitBreakerState publishes a breaker state by its numeric value.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
