package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigbook/gigbook/internal/config"
)

// deadRedis returns a client whose commands always fail, which the cache
// treats as generation 0 and a permanent miss.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          30 * time.Second,
		Prefix:       "pages",
		MaxBodyBytes: 1 << 20,
		BypassCookie: "gigbook_flash",
	}
}

func routedContext(e *echo.Echo, target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/venues/:id")
	return c
}

func TestCacheKeyDistinguishesDetailPages(t *testing.T) {
	p := NewPageCache(cacheCfg(), deadRedis())
	e := echo.New()

	c1 := routedContext(e, "/venues/1")
	c2 := routedContext(e, "/venues/2")

	k1 := p.cacheKey(c1.Request().Context(), c1)
	k2 := p.cacheKey(c2.Request().Context(), c2)
	assert.NotEqual(t, k1, k2, "two venues sharing the same route must not share a cache entry")

	// Same URL yields the same key.
	again := routedContext(e, "/venues/1")
	assert.Equal(t, k1, p.cacheKey(again.Request().Context(), again))
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	p := NewPageCache(cacheCfg(), deadRedis())
	e := echo.New()

	c1 := routedContext(e, "/venues/1")
	c2 := routedContext(e, "/venues/1?tab=shows")
	assert.NotEqual(t, p.cacheKey(c1.Request().Context(), c1), p.cacheKey(c2.Request().Context(), c2))
}

func TestCacheBypassedForPendingFlash(t *testing.T) {
	p := NewPageCache(cacheCfg(), deadRedis())
	e := echo.New()
	mw := p.Middleware()

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "venue page")
	})

	// Without the flash cookie the middleware participates and marks a miss.
	req := httptest.NewRequest(http.MethodGet, "/venues/1", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	// A pending flash cookie must reach the handler untouched by the cache.
	req = httptest.NewRequest(http.MethodGet, "/venues/1", nil)
	req.AddCookie(&http.Cookie{Name: "gigbook_flash", Value: "pending"})
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, "venue page", rec.Body.String())
}
