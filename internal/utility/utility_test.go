package utility

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func contextWithHeaders(headers map[string]string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetRealIPPrefersForwardedFor(t *testing.T) {
	c := contextWithHeaders(map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		"X-Real-IP":       "198.51.100.2",
	})
	assert.Equal(t, "203.0.113.7", GetRealIP(c))
}

func TestGetRealIPFallsBackToRealIPHeader(t *testing.T) {
	c := contextWithHeaders(map[string]string{"X-Real-IP": "198.51.100.2"})
	assert.Equal(t, "198.51.100.2", GetRealIP(c))
}

func TestGetRealIPFallsBackToRemoteAddr(t *testing.T) {
	c := contextWithHeaders(nil)
	assert.NotEmpty(t, GetRealIP(c))
}

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "attempt %d", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// A different source is unaffected.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}
