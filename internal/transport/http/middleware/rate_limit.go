package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// per-client token buckets, keyed by IP
var limiters sync.Map

func limiterFor(key string, rps float64, burst int) *rate.Limiter {
	if v, ok := limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(rps), burst)
	actual, _ := limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// RateLimit enforces a per-client-IP token bucket. Used on the generation
// endpoint, where every request costs an upstream LLM call.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		if !limiterFor("ip:"+ip, rps, burst).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
