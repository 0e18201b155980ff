package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/guttosm/flock-service/internal/metrics"
)

const (
	defaultShards   = 16
	sweepInterval   = time.Minute
	defaultCacheTag = "default"
)

// Option configures a Sharded cache.
type Option func(*options)

type options struct {
	name  string
	clock func() time.Time
	sweep time.Duration
}

// WithName labels the cache's Prometheus series.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithSweepInterval sets how often expired entries are purged. Zero or less
// disables the sweeper; expired entries are then only dropped on access.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) { o.sweep = d }
}

// Sharded is an LRU cache with TTL expiry, split across independently locked
// shards chosen by the xxhash of the key.
type Sharded[V any] struct {
	name      string
	shards    []*shard[V]
	shardMask uint64

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewSharded returns a cache holding about capacity entries for ttl each.
// The shard count is rounded up to a power of two. Stop releases the sweeper.
func NewSharded[V any](capacity int, ttl time.Duration, numShards int, opts ...Option) *Sharded[V] {
	o := options{name: defaultCacheTag, clock: time.Now, sweep: sweepInterval}
	for _, opt := range opts {
		opt(&o)
	}

	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	sc := &Sharded[V]{
		name:      o.name,
		shards:    make([]*shard[V], n),
		shardMask: uint64(n - 1),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	for i := range sc.shards {
		sc.shards[i] = newShard[V](o.name, perShard, ttl, o.clock)
	}

	if o.sweep > 0 {
		go sc.sweepLoop(o.sweep)
	} else {
		close(sc.done)
	}
	return sc
}

func (sc *Sharded[V]) shardFor(key string) *shard[V] {
	return sc.shards[xxhash.Sum64String(key)&sc.shardMask]
}

func (sc *Sharded[V]) Get(key string) (V, bool) {
	return sc.shardFor(key).get(key)
}

func (sc *Sharded[V]) Set(key string, value V) {
	sc.shardFor(key).set(key, value)
}

func (sc *Sharded[V]) Invalidate(key string) {
	sc.shardFor(key).invalidate(key)
}

// Clear drops every entry and resets the counters.
func (sc *Sharded[V]) Clear() {
	for _, s := range sc.shards {
		s.clear()
	}
}

// Stop ends the sweeper and waits for it to exit. It is safe to call more
// than once; the cache stays usable afterwards.
func (sc *Sharded[V]) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopCh) })
	<-sc.done
}

// Metrics sums the counters of every shard.
func (sc *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range sc.shards {
		m := s.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// Sweep purges expired entries from every shard and publishes the size gauge.
func (sc *Sharded[V]) Sweep() {
	for _, s := range sc.shards {
		s.purgeExpired()
	}
	m := sc.Metrics()
	metrics.UpdateCacheMetrics(sc.name, m.Size, m.Capacity)
}

func (sc *Sharded[V]) sweepLoop(every time.Duration) {
	defer close(sc.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sc.Sweep()
		case <-sc.stopCh:
			return
		}
	}
}

type item[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// shard is one LRU list guarded by its own mutex. The front of order is the
// most recently used entry.
type shard[V any] struct {
	name     string
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	items     map[string]*list.Element
	order     *list.List
	hits      int64
	misses    int64
	evictions int64
}

func newShard[V any](name string, capacity int, ttl time.Duration, clock func() time.Time) *shard[V] {
	return &shard[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		now:      clock,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

func (s *shard[V]) get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	el, ok := s.items[key]
	if !ok {
		s.misses++
		metrics.RecordCacheOperation(s.name, "get", "miss")
		return zero, false
	}

	it := el.Value.(*item[V])
	if !s.now().Before(it.expiresAt) {
		s.drop(el)
		s.misses++
		metrics.RecordCacheOperation(s.name, "get", "expired")
		return zero, false
	}

	s.order.MoveToFront(el)
	s.hits++
	metrics.RecordCacheOperation(s.name, "get", "hit")
	return it.value, true
}

// set stores value and refreshes its expiry. Over capacity the least
// recently used entry is evicted.
func (s *shard[V]) set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(s.ttl)
	if el, ok := s.items[key]; ok {
		it := el.Value.(*item[V])
		it.value, it.expiresAt = value, expiresAt
		s.order.MoveToFront(el)
		metrics.RecordCacheOperation(s.name, "set", "update")
		return
	}

	s.items[key] = s.order.PushFront(&item[V]{key: key, value: value, expiresAt: expiresAt})
	metrics.RecordCacheOperation(s.name, "set", "insert")

	if s.order.Len() > s.capacity {
		s.drop(s.order.Back())
		s.evictions++
		metrics.RecordCacheOperation(s.name, "evict", "capacity")
	}
}

func (s *shard[V]) invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.drop(el)
		metrics.RecordCacheOperation(s.name, "invalidate", "removed")
	}
}

func (s *shard[V]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*list.Element, s.capacity)
	s.order.Init()
	s.hits, s.misses, s.evictions = 0, 0, 0
}

// purgeExpired walks from the least recently used end. Entries share one TTL
// but reads reorder them, so the whole list is scanned.
func (s *shard[V]) purgeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for el := s.order.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*item[V]).expiresAt) {
			s.drop(el)
			metrics.RecordCacheOperation(s.name, "evict", "expired")
		}
		el = prev
	}
}

// drop must be called with s.mu held.
func (s *shard[V]) drop(el *list.Element) {
	delete(s.items, el.Value.(*item[V]).key)
	s.order.Remove(el)
}

func (s *shard[V]) metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Metrics{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Size:      s.order.Len(),
		Capacity:  s.capacity,
	}
}
