package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig sets the sustained request rate and burst allowance
// applied per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// bucket is a token bucket refilled lazily on each take.
type bucket struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// take refills the bucket for the elapsed time, then spends one token.
// It reports whether the request may proceed and, when it may not, how
// many whole seconds until a token becomes available.
func (b *bucket) take(rate, burst float64) (ok bool, wait int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.last).Seconds() * rate
	if b.tokens > burst {
		b.tokens = burst
	}
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if rate <= 0 {
		return false, 1
	}
	return false, int((1-b.tokens)/rate) + 1
}

// RateLimit throttles requests per client IP. Rejected requests get a
// 429 with a Retry-After hint.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)
	burst := float64(cfg.BurstSize)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			mu.Lock()
			b, found := buckets[ip]
			if !found {
				b = &bucket{tokens: burst, last: time.Now()}
				buckets[ip] = b
			}
			mu.Unlock()

			ok, wait := b.take(cfg.RequestsPerSecond, burst)
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(wait))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
