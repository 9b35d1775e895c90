package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/response"
)

// Limiter decides whether key may perform one more request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter shared across instances.
type RedisLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: max, window: window, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("studyaid:rate_limit:%s:%d", key, bucket)

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		l.rdb.PExpire(ctx, redisKey, l.window+time.Second)
	}
	return count <= int64(l.max), nil
}

// LocalLimiter keeps one token bucket per key in process memory. A bucket
// idle for a full window is back at full burst, so it is dropped.
type LocalLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	window    time.Duration
	now       func() time.Time
	lastPrune time.Time
	buckets   map[string]*localBucket
}

type localBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewLocalLimiter(max int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		limit:   rate.Every(window / time.Duration(max)),
		burst:   max,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*localBucket),
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) >= l.window {
		l.prune(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1), nil
}

// prune runs at most once per window; callers hold l.mu.
func (l *LocalLimiter) prune(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.seen) >= l.window {
			delete(l.buckets, key)
		}
	}
	l.lastPrune = now
}

// RateLimit throttles per authenticated user, falling back to client IP.
// Limiter errors fail open.
func RateLimit(limiter Limiter, retryAfter time.Duration) gin.HandlerFunc {
	retry := strconv.Itoa(int(retryAfter.Seconds()))
	return func(c *gin.Context) {
		key := CurrentUserID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			_ = c.Error(err)
		}
		if !allowed {
			c.Header("Retry-After", retry)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
