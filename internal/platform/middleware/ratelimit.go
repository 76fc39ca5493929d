package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter pairs a token bucket with its last access time so idle
// entries can be evicted.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a per-client-IP token bucket.
// It is mounted on the credential endpoints to slow brute-force attempts.
type RateLimiter struct {
	ratePerMin int
	burst      int

	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

// NewRateLimiter creates a limiter allowing ratePerMin requests per minute
// per client IP with the given burst size.
func NewRateLimiter(ratePerMin, burst int) *RateLimiter {
	rl := &RateLimiter{
		ratePerMin: ratePerMin,
		burst:      burst,
		limiters:   make(map[string]*clientLimiter),
	}
	go rl.cleanupLoop(5 * time.Minute)
	return rl
}

// allow reports whether the client may proceed.
func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[clientIP]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.ratePerMin)/60.0), rl.burst),
		}
		rl.limiters[clientIP] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

// cleanupLoop drops limiters that have been idle for more than the interval.
func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-interval)
		rl.mu.Lock()
		for ip, cl := range rl.limiters {
			if cl.lastAccess.Before(cutoff) {
				delete(rl.limiters, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
