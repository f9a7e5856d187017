package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridehub/ms-route/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	var body *strings.Reader
	if method == http.MethodGet {
		body = strings.NewReader("")
	} else {
		body = strings.NewReader("{}")
	}
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRedisCache_GenerationInvalidation(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: 1 << 20}

	hits := 0
	e := echo.New()
	g := e.Group("/api/wards", NewRedisCache(cfg, rdb, "/api/wards", nil))
	g.GET("/count", func(c echo.Context) error {
		hits++
		c.Response().Header().Set("X-Total-Count", "7")
		return c.JSON(http.StatusOK, hits)
	})
	g.POST("", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })
	g.PUT("/:id", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest) })

	first := serve(e, http.MethodGet, "/api/wards/count?name.equals=a")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := serve(e, http.MethodGet, "/api/wards/count?name.equals=a")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "7", second.Header().Get("X-Total-Count"))
	assert.Equal(t, 1, hits)

	other := serve(e, http.MethodGet, "/api/wards/count?name.equals=b")
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))

	serve(e, http.MethodPut, "/api/wards/1")
	assert.Equal(t, "HIT", serve(e, http.MethodGet, "/api/wards/count?name.equals=a").Header().Get("X-Cache"),
		"a failed write leaves the generation alone")

	require.Equal(t, http.StatusCreated, serve(e, http.MethodPost, "/api/wards").Code)
	after := serve(e, http.MethodGet, "/api/wards/count?name.equals=a")
	assert.Equal(t, "MISS", after.Header().Get("X-Cache"))
	assert.Equal(t, 3, hits)
	assert.Equal(t, "3\n", after.Body.String())
}

func TestRedisCache_InvalidatesDependentGroups(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"}

	e := echo.New()
	g := e.Group("/api/drivers", NewRedisCache(cfg, rdb, "/api/drivers", nil, "/api/staff"))
	g.POST("/simple", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })

	serve(e, http.MethodPost, "/api/drivers/simple")
	for _, key := range []string{"cache:gen:/api/drivers", "cache:gen:/api/staff"} {
		v, err := mr.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "1", v, key)
	}
}

func TestRedisCache_HitCarriesOnlyCurrentRequestHeaders(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"}

	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-RateLimit-Remaining", c.Response().Header().Get(echo.HeaderXRequestID))
			return next(c)
		}
	})
	g := e.Group("/api/wards", NewRedisCache(cfg, rdb, "/api/wards", nil))
	g.GET("/:id", func(c echo.Context) error {
		c.Response().Header().Set("X-Total-Count", "1")
		return c.String(http.StatusOK, "ward")
	})

	first := serve(e, http.MethodGet, "/api/wards/1")
	require.Equal(t, "MISS", first.Header().Get("X-Cache"))

	hit := serve(e, http.MethodGet, "/api/wards/1")
	require.Equal(t, "HIT", hit.Header().Get("X-Cache"))
	ids := hit.Header().Values(echo.HeaderXRequestID)
	require.Len(t, ids, 1)
	assert.NotEqual(t, first.Header().Get(echo.HeaderXRequestID), ids[0])
	assert.Equal(t, []string{ids[0]}, hit.Header().Values("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"1"}, hit.Header().Values("X-Total-Count"))
	assert.Equal(t, "ward", hit.Body.String())
}

func TestRedisCache_SkipsUncacheable(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: 4,
		Routes: map[string]bool{"/api/wards": true}}

	e := echo.New()
	g := e.Group("/api/wards", NewRedisCache(cfg, rdb, "/api/wards", nil))
	g.GET("", func(c echo.Context) error { return c.String(http.StatusOK, "a long body") })
	g.GET("/:id", func(c echo.Context) error { return c.String(http.StatusOK, "x") })

	serve(e, http.MethodGet, "/api/wards")
	assert.Equal(t, "MISS", serve(e, http.MethodGet, "/api/wards").Header().Get("X-Cache"), "body over the limit")
	assert.Empty(t, serve(e, http.MethodGet, "/api/wards/1").Header().Get("X-Cache"), "route not listed")
}

func TestRedisCache_Disabled(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil, "/api/wards", nil)
	called := false
	h := mw(func(echo.Context) error {
		called = true
		return nil
	})
	require.NoError(t, h(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())))
	assert.True(t, called)
}

func TestTokenBucket(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour,
		TTL: 2 * time.Hour, KeyStrategy: "ip_route", Prefix: "rl",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb, nil))
	e.GET("/api/wards", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/api/floors", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/api/wards").Code)
	rec := serve(e, http.MethodGet, "/api/wards")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	blocked := serve(e, http.MethodGet, "/api/wards")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/api/floors").Code, "buckets are per route")

	mr.Close()
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/api/wards").Code, "redis down lets requests through")
}

func TestMetrics_RecordsRenderedStatus(t *testing.T) {
	e := echo.New()
	e.Use(Metrics)
	e.GET("/boom", func(echo.Context) error { return echo.NewHTTPError(http.StatusTeapot) })
	rec := serve(e, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/wards/3", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/wards/:id")

	for strategy, want := range map[string]string{
		"ip":       "rl:ip:10.0.0.1",
		"route":    "rl:route:GET /api/wards/:id",
		"ip_route": "rl:ip:10.0.0.1:route:GET /api/wards/:id",
	} {
		assert.Equal(t, want, buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c))
	}
}
