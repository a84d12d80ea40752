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

func cacheCtx(target, pattern string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(pattern)
	return c
}

func cacheCfg(strategy string) config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		KeyStrategy: strategy,
		Prefix:      "videoclub:cache",
	}
}

// Two movies served by the same parameterized route must get distinct
// cache entries; keying on the route pattern would serve one movie's JSON
// for every id.
func TestCacheKeyDistinguishesPathParams(t *testing.T) {
	cfg := cacheCfg("path_query")
	a := cacheKeyFrom(cfg, cacheCtx("/api/v1/movies/aaa", "/api/v1/movies/:id"))
	b := cacheKeyFrom(cfg, cacheCtx("/api/v1/movies/bbb", "/api/v1/movies/:id"))
	assert.NotEqual(t, a, b)
}

func TestCacheKeyStableForSameRequest(t *testing.T) {
	cfg := cacheCfg("path_query")
	a := cacheKeyFrom(cfg, cacheCtx("/api/v1/movies?page=2", "/api/v1/movies"))
	b := cacheKeyFrom(cfg, cacheCtx("/api/v1/movies?page=2", "/api/v1/movies"))
	assert.Equal(t, a, b)
}

func TestCacheKeyQueryStrategy(t *testing.T) {
	cfg := cacheCfg("path_query")
	p1 := cacheKeyFrom(cfg, cacheCtx("/api/v1/movies?page=1", "/api/v1/movies"))
	p2 := cacheKeyFrom(cfg, cacheCtx("/api/v1/movies?page=2", "/api/v1/movies"))
	assert.NotEqual(t, p1, p2)

	// "path" deliberately collapses query variants into one entry.
	cfg = cacheCfg("path")
	p1 = cacheKeyFrom(cfg, cacheCtx("/api/v1/movies?page=1", "/api/v1/movies"))
	p2 = cacheKeyFrom(cfg, cacheCtx("/api/v1/movies?page=2", "/api/v1/movies"))
	assert.Equal(t, p1, p2)
}

func TestCacheWithoutRedisIsPassThrough(t *testing.T) {
	mw := NewRedisCache(cacheCfg("path_query"), nil)

	called := false
	next := func(c echo.Context) error { called = true; return nil }

	c := cacheCtx("/api/v1/movies", "/api/v1/movies")
	require.NoError(t, mw(next)(c))
	assert.True(t, called)
	assert.Empty(t, c.Response().Header().Get("X-Cache"))
}
