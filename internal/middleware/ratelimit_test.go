package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoclub/internal/config"
)

func rateCtx(method, target, pattern string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(pattern)
	return c
}

func TestRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "videoclub:rl", KeyStrategy: "ip_route"}
	c := rateCtx(http.MethodGet, "/api/v1/movies", "/api/v1/movies")
	// httptest requests carry 192.0.2.1 as the remote address.
	assert.Equal(t, "videoclub:rl:ip:192.0.2.1:route:GET /api/v1/movies", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "videoclub:rl:ip:192.0.2.1", buildRateKey(cfg, c))

	cfg.KeyStrategy = "route"
	assert.Equal(t, "videoclub:rl:route:GET /api/v1/movies", buildRateKey(cfg, c))
}

// Requests to the same parameterized route share one bucket: the route
// dimension uses the registered pattern, not the concrete path.
func TestRateKeyBucketsByRoutePattern(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "videoclub:rl", KeyStrategy: "route"}
	a := buildRateKey(cfg, rateCtx(http.MethodGet, "/api/v1/movies/aaa", "/api/v1/movies/:id"))
	b := buildRateKey(cfg, rateCtx(http.MethodGet, "/api/v1/movies/bbb", "/api/v1/movies/:id"))
	assert.Equal(t, a, b)
}

func TestRateLimiterWithoutRedisIsPassThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, KeyStrategy: "ip_route"}
	mw := NewTokenBucket(cfg, nil)

	called := false
	next := func(c echo.Context) error { called = true; return nil }

	require.NoError(t, mw(next)(rateCtx(http.MethodGet, "/", "/")))
	assert.True(t, called)
}
