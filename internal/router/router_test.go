package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridehub/ms-route/internal/config"
	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/repository"
	"github.com/ridehub/ms-route/internal/service"
)

func newServe(e *echo.Echo) func(method, target, body string) *httptest.ResponseRecorder {
	return func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}
}

func TestNew(t *testing.T) {
	e := New(Deps{
		Services: service.NewServices(repository.NewMemoryStores(), nil, nil),
		AppName:  "msRouteApp",
		Limits:   criteria.DefaultLimits,
	})

	serve := newServe(e)

	rec := serve(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = serve(http.MethodPost, PathStaff, `{"name":"Le Van C","status":"ACTIVE","createdAt":"2024-05-01T08:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "msRouteApp.msRouteStaff.created", rec.Header().Get("X-msRouteApp-alert"))

	rec = serve(http.MethodGet, PathStaff+"/count?status.equals=ACTIVE", "")
	assert.Equal(t, "1\n", rec.Body.String())
	rec = serve(http.MethodGet, PathStaff+"/count?status.equals=RETIRED", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, path := range []string{PathAddresses, PathAttendants, PathDrivers, PathFileRoutes, PathFloors, PathSeatMaps, PathWards} {
		rec = serve(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "[]\n", rec.Body.String(), path)
	}
	assert.Equal(t, http.StatusNotFound, serve(http.MethodGet, PathAttendants+"/simple/1", "").Code)

	rec = serve(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "msroute_http_requests_total")
}

func TestNew_StaffWriteRefreshesSimpleView(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	serve := newServe(New(Deps{
		Services: service.NewServices(repository.NewMemoryStores(), nil, nil),
		Redis:    rdb,
		Cache:    config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"},
		AppName:  "msRouteApp",
		Limits:   criteria.DefaultLimits,
	}))

	rec := serve(http.MethodPost, PathDrivers+"/simple", `{"name":"Old Name","licenseClass":"D"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(http.MethodGet, PathDrivers+"/simple/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	rec = serve(http.MethodGet, PathDrivers+"/simple/1", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = serve(http.MethodPatch, PathStaff+"/1", `{"id":1,"name":"New Name"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(http.MethodGet, PathDrivers+"/simple/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), `"name":"New Name"`)
}

func TestNew_PanicIsCountedAs500(t *testing.T) {
	e := New(Deps{
		Services: service.NewServices(repository.NewMemoryStores(), nil, nil),
		AppName:  "msRouteApp",
		Limits:   criteria.DefaultLimits,
	})
	e.GET("/panic", func(echo.Context) error { panic("boom") })

	serve := newServe(e)

	rec := serve(http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = serve(http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), `msroute_http_requests_total{method="GET",route="/panic",status="500"} 1`)
}
