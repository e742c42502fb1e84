package utility

import (
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
)

// GetRealIP is a helper function to get the user's real IP address.
// It checks proxy headers (like from ngrok or a CDN) first.
func GetRealIP(c echo.Context) string {
	// X-Forwarded-For can be a list: "client, proxy1, proxy2"
	xForwardedFor := c.Request().Header.Get("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		return strings.TrimSpace(ips[0])
	}

	xRealIP := c.Request().Header.Get("X-Real-IP")
	if xRealIP != "" {
		return xRealIP
	}

	return c.RealIP()
}

// maxTrackedIPs bounds the attempt map so a scan across many source addresses
// cannot grow it without limit; the least recently seen address is evicted.
const maxTrackedIPs = 4096

// RateLimiter is a sliding-window per-IP request throttle. It tracks attempt
// timestamps in an LRU-bounded map.
type RateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	attempts *lru.Cache[string, []time.Time]
}

// NewRateLimiter allows up to max requests per source address within window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	cache, _ := lru.New[string, []time.Time](maxTrackedIPs)
	return &RateLimiter{
		window:   window,
		max:      max,
		attempts: cache,
	}
}

// Allow records an attempt from ip and reports whether it is within the
// limit. Attempts older than the window are discarded first.
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	prior, _ := r.attempts.Get(ip)

	recent := prior[:0]
	for _, t := range prior {
		if now.Sub(t) < r.window {
			recent = append(recent, t)
		}
	}

	if len(recent) >= r.max {
		r.attempts.Add(ip, recent)
		return false
	}

	r.attempts.Add(ip, append(recent, now))
	return true
}
