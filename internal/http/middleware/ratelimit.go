package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type ipWindow struct {
	windowStart time.Time
	count       int
}

var (
	rlMu      sync.Mutex
	ipWindows = make(map[string]*ipWindow)
)

// SimpleRateLimit is the in-process per-IP fixed-window limiter. It is the
// outermost guard; per-player budgets are handled by ActionRateLimit.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rlMu.Lock()
		w, ok := ipWindows[ip]
		if !ok || now.Sub(w.windowStart) > window {
			ipWindows[ip] = &ipWindow{windowStart: now, count: 1}
			rlMu.Unlock()
			c.Next()
			return
		}
		w.count++
		count := w.count
		rlMu.Unlock()

		if count > maxRequests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
