// Package router assembles the echo instance: global middleware, the
// entity resources under /api, health and metrics.
package router

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ridehub/ms-route/internal/config"
	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/handler"
	"github.com/ridehub/ms-route/internal/middleware"
	"github.com/ridehub/ms-route/internal/service"
)

// Deps is everything New needs. Redis may be nil.
type Deps struct {
	Services  *service.Services
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	AppName   string
	Limits    criteria.Limits
	Log       *slog.Logger
}

// Resource paths.
const (
	PathAddresses  = "/api/addresses"
	PathAttendants = "/api/attendants"
	PathDrivers    = "/api/drivers"
	PathFileRoutes = "/api/file-routes"
	PathFloors     = "/api/floors"
	PathSeatMaps   = "/api/seat-maps"
	PathStaff      = "/api/staff"
	PathWards      = "/api/wards"
)

func New(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(d.AppName, d.Log)

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics)
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s := d.Services
	mount(e, d, PathAddresses, s.Addresses)
	mount(e, d, PathFileRoutes, s.FileRoutes)
	mount(e, d, PathFloors, s.Floors)
	mount(e, d, PathSeatMaps, s.SeatMaps)
	// Staff rows back the /simple views of drivers and attendants.
	mount(e, d, PathStaff, s.Staff, PathDrivers, PathAttendants)
	mount(e, d, PathWards, s.Wards)

	// /simple writes touch staff rows too.
	drivers := mount(e, d, PathDrivers, s.Drivers, PathStaff)
	handler.NewSimpleRole(s.SimpleDrivers, PathDrivers, alerts(d, s.Drivers.Entity())).Register(drivers)
	attendants := mount(e, d, PathAttendants, s.Attendants, PathStaff)
	handler.NewSimpleRole(s.SimpleAttendants, PathAttendants, alerts(d, s.Attendants.Entity())).Register(attendants)

	return e
}

func mount[T any](e *echo.Echo, d Deps, path string, svc *service.Service[T], invalidates ...string) *echo.Group {
	g := e.Group(path, middleware.NewRedisCache(d.Cache, d.Redis, path, d.Log, invalidates...))
	handler.NewResource(svc, path, alerts(d, svc.Entity()), d.Limits).Register(g)
	return g
}

func alerts(d Deps, entity string) handler.Alerts {
	return handler.Alerts{App: d.AppName, Entity: "msRoute" + entity}
}
