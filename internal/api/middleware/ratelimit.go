package middleware

import (
	"net/http"
	"sync"

	"tenant-admin-backend/internal/auth"
	"tenant-admin-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit bounds how fast one caller may issue API requests. Callers are
// keyed by authenticated user id, falling back to the client IP. A
// non-positive rps disables the limit.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}

	var limiters sync.Map // caller key -> *rate.Limiter

	return func(c *gin.Context) {
		key, ok := auth.GetUserID(c)
		if !ok {
			key = "ip:" + c.ClientIP()
		}

		limiter, _ := limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		if !limiter.(*rate.Limiter).Allow() {
			logger.WithContext(c).WithField("caller", key).Warn("rate limit exceeded")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
