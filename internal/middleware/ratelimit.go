package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a per-client-IP token bucket. Idle buckets are evicted
// so the map does not grow with every IP ever seen.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)

	evict := func(now time.Time) {
		for ip, cl := range clients {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(clients, ip)
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			if len(clients) > 1024 {
				evict(now)
			}
			cl = &clientLimiter{limiter: rate.NewLimiter(rps, burst)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
