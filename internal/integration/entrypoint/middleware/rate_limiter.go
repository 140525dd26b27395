// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/dto"
)

// sweepThreshold is the number of tracked windows above which expired
// ones are dropped on the next request.
const sweepThreshold = 1024

// window counts the requests of one client on one route.
type window struct {
	requests int
	resetAt  time.Time
}

// RateLimiter caps requests per client IP and route in fixed windows.
// It guards the bulk data endpoints, each of which rewrites the whole ledger.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	clock   adapter.Clock
}

// NewRateLimiter allows limit requests per period. A non-positive limit
// disables the limiter.
func NewRateLimiter(limit int, period time.Duration, clock adapter.Clock) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		clock:   clock,
	}
}

// Middleware returns a Gin middleware handler that enforces the limit.
// Rejected requests get 429 with a Retry-After header in seconds.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		client := c.ClientIP()
		if client == "" {
			client = c.Request.RemoteAddr
		}

		wait, ok := rl.take(c.Request.Method + " " + c.FullPath() + " " + client)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// take counts one request against key. When the window is exhausted it
// returns how long until the window resets.
func (rl *RateLimiter) take(key string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	if len(rl.windows) > sweepThreshold {
		rl.sweep(now)
	}

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		rl.windows[key] = &window{requests: 1, resetAt: now.Add(rl.period)}
		return 0, true
	}

	if w.requests < rl.limit {
		w.requests++
		return 0, true
	}
	return w.resetAt.Sub(now), false
}

// sweep drops expired windows. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// Tracked returns the number of live windows.
func (rl *RateLimiter) Tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.sweep(rl.clock.Now())
	return len(rl.windows)
}
