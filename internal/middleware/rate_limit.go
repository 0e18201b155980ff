package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// rateLimitShards must be a power of two.
const rateLimitShards = 16

// KeyFunc names the bucket a request is counted against. Keys are
// "<scope>:<id>", where scope is ip, user or farm.
type KeyFunc func(c *gin.Context) string

// ClientIPKey counts requests per client address.
func ClientIPKey(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// CallerKey counts requests per farm, so every member of a farm shares one
// budget. Callers without a farm are counted per user, and unauthenticated
// requests per address. It must run after JWTAuth to see the caller.
func CallerKey(c *gin.Context) string {
	if claims, ok := ClaimsFrom(c); ok && claims.HasFarm() {
		return "farm:" + claims.FarmID
	}
	if value, ok := c.Get(userIDKey); ok {
		if id, ok := value.(primitive.ObjectID); ok {
			return "user:" + id.Hex()
		}
	}
	return ClientIPKey(c)
}

type bucket struct {
	remaining   int
	windowStart time.Time
}

type limiterShard struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// RateLimiter is a fixed-window limiter allowing rate requests per window
// for each key. Buckets are sharded by key hash; idle buckets are swept
// lazily, so the limiter needs no background goroutine.
type RateLimiter struct {
	shards [rateLimitShards]*limiterShard
	rate   int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{rate: rate, window: window, now: time.Now}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{buckets: make(map[string]*bucket)}
	}
	return rl
}

// Allow takes one request from the key's bucket. It reports whether the
// request is allowed, how many remain, and when the window resets.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, reset time.Time) {
	shard := rl.shards[xxhash.Sum64String(key)&(rateLimitShards-1)]
	now := rl.now()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if now.Sub(shard.lastSweep) > rl.window {
		shard.sweep(now, rl.window)
	}

	b, ok := shard.buckets[key]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		b = &bucket{remaining: rl.rate, windowStart: now}
		shard.buckets[key] = b
	}
	reset = b.windowStart.Add(rl.window)

	if b.remaining <= 0 {
		return false, 0, reset
	}
	b.remaining--
	return true, b.remaining, reset
}

// Len returns the number of tracked buckets.
func (rl *RateLimiter) Len() int {
	n := 0
	for _, shard := range rl.shards {
		shard.mu.Lock()
		n += len(shard.buckets)
		shard.mu.Unlock()
	}
	return n
}

func (s *limiterShard) sweep(now time.Time, window time.Duration) {
	for key, b := range s.buckets {
		if now.Sub(b.windowStart) >= window {
			delete(s.buckets, key)
		}
	}
	s.lastSweep = now
}

// Middleware rejects requests over the limit with 429. Every response
// carries the X-RateLimit-* headers; rejections add Retry-After.
func (rl *RateLimiter) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := key(c)
		allowed, remaining, reset := rl.Allow(id)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			wait := int(math.Ceil(reset.Sub(rl.now()).Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(wait, 1)))
			scope, _, _ := strings.Cut(id, ":")
			metrics.RecordRateLimited(scope)
			abortWithKey(c, http.StatusTooManyRequests, dto.ErrCodeRateLimit, i18n.ErrKeyRateLimitExceeded)
			return
		}

		c.Next()
	}
}
