package server

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"gymcore/internal/auth"
)

// RateLimiter keeps one token bucket per caller. Authenticated traffic is
// keyed by user id, so members behind a shared gym-lobby IP do not drain
// each other's quota; anonymous traffic falls back to the client IP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	ttl     time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int, ttl time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
	}

	go rl.evictStale()

	return rl
}

func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if time.Since(b.lastSeen) > rl.ttl {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = time.Now()
	rl.mu.Unlock()

	return b.limiter.Allow()
}

func callerKey(c *gin.Context) string {
	if userID, ok := auth.GetUserID(c); ok {
		return "user:" + strconv.Itoa(userID)
	}
	return "ip:" + c.ClientIP()
}

// RateLimitMiddleware throttles per caller. Register it after the auth
// middleware on authenticated groups so the user-id key applies.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiter := NewRateLimiter(rps, burst, 3*time.Minute)

	return func(c *gin.Context) {
		if !limiter.Allow(callerKey(c)) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
