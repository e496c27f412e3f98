// ratelimit.go implements per-client rate limiting using a token bucket.
//
// How token bucket works:
// - Each client (by IP address) gets a bucket holding up to `burst` tokens
// - Each request consumes 1 token
// - Tokens refill at a steady rate (`perSecond` tokens per second)
// - If the bucket is empty, the request is rejected with 429 Too Many Requests
//
// Go Pattern: golang.org/x/time/rate implements the bucket for us; we only
// keep one *rate.Limiter per client and forget idle ones.
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/models"
)

// idleTimeout is how long a client's bucket is kept without requests.
const idleTimeout = time.Hour

// RateLimiter tracks request rates per client.
type RateLimiter struct {
	// Go Pattern: A plain sync.Mutex is enough here; every request both
	// reads and updates the map entry.
	mu        sync.Mutex
	clients   map[string]*client
	perSecond rate.Limit
	burst     int
	done      chan struct{}
	stopOnce  sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per second
// with bursts of up to burst requests. perSecond <= 0 disables limiting.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	rl := &RateLimiter{
		clients:   make(map[string]*client),
		perSecond: limit,
		burst:     burst,
		done:      make(chan struct{}),
	}

	// Start background cleanup goroutine
	go rl.cleanup()

	return rl
}

// Stop ends the background cleanup.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// RateLimit returns Gin middleware that enforces per-client rate limits.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.perSecond == rate.Inf {
			c.Next()
			return
		}

		lim := rl.limiterFor(c.ClientIP())

		if !lim.Allow() {
			// Add headers even for rejected requests so clients know their limits
			c.Header("X-RateLimit-Limit", formatFloat(float64(rl.burst)))
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Rate limit exceeded. Try again later.",
				Code:    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", formatFloat(float64(rl.burst)))
		c.Header("X-RateLimit-Remaining", formatFloat(lim.Tokens()))

		c.Next()
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[key]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.perSecond, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// cleanup periodically removes idle clients to prevent memory leaks.
func (rl *RateLimiter) cleanup() {
	// Go Pattern: time.Ticker sends values at regular intervals.
	// Always defer ticker.Stop() to release resources.
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, cl := range rl.clients {
				if now.Sub(cl.lastSeen) > idleTimeout {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// formatFloat converts a float to a string for headers.
func formatFloat(f float64) string {
	if f < 0 {
		f = 0
	}
	return fmt.Sprintf("%.0f", f)
}
