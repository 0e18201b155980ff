// Package cache provides an in-process sharded LRU cache with TTL expiry.
package cache

// Cache defines the interface for cache operations.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// WithMetrics extends Cache with metrics reporting.
type WithMetrics[V any] interface {
	Cache[V]
	Metrics() Metrics
}
