// Package ratelimit throttles the violation sink. The endpoint is called
// from untrusted client-side hooks, so a hostile client could flood the
// append-only log; a fixed window per user keeps that bounded.
package ratelimit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewLimiter(redisURI string, limit int64, window time.Duration) (*Limiter, error) {
	opts, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}
	return &Limiter{client: redis.NewClient(opts), limit: limit, window: window}, nil
}

// Middleware rejects with 429 once a key exceeds the window's budget.
// Redis being unreachable fails open: dropping violation reports to a
// storage hiccup would be worse than briefly not throttling.
func (l *Limiter) Middleware(keyFn func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%d", keyFn(c), time.Now().Unix()/int64(l.window.Seconds()))

		count, err := l.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			l.client.Expire(c.Request.Context(), key, l.window)
		}
		if count > l.limit {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *Limiter) Close() error {
	return l.client.Close()
}
