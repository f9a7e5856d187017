// Package handler exposes the route entities over HTTP. Each entity gets a
// generic Resource mounted under /api; drivers and attendants also get the
// flattened /simple endpoints.
package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/service"
)

const mimeMergePatchJSON = "application/merge-patch+json"

// Alerts writes the X-{app}-alert and X-{app}-params headers that tell
// clients which entity a write touched.
type Alerts struct {
	App    string
	Entity string
}

func (a Alerts) set(c echo.Context, action string, id int64) {
	h := c.Response().Header()
	h.Set("X-"+a.App+"-alert", a.App+"."+a.Entity+"."+action)
	h.Set("X-"+a.App+"-params", strconv.FormatInt(id, 10))
}

// Resource serves CRUD and criteria queries for one entity.
type Resource[T any] struct {
	svc    *service.Service[T]
	path   string
	alerts Alerts
	limits criteria.Limits
}

// NewResource builds the handler for svc mounted at path (e.g.
// /api/addresses).
func NewResource[T any](svc *service.Service[T], path string, alerts Alerts, limits criteria.Limits) *Resource[T] {
	return &Resource[T]{svc: svc, path: path, alerts: alerts, limits: limits}
}

// Register mounts every route on g, which must be the group for r.path.
func (r *Resource[T]) Register(g *echo.Group) {
	g.POST("", r.Create)
	g.GET("", r.List)
	g.GET("/count", r.Count)
	g.GET("/:id", r.Get)
	g.PUT("/:id", r.Update)
	g.PATCH("/:id", r.PartialUpdate)
	g.DELETE("/:id", r.Delete)
}

func (r *Resource[T]) Create(c echo.Context) error {
	var e T
	if err := decode(c, &e); err != nil {
		return err
	}
	created, err := r.svc.Create(c.Request().Context(), &e)
	if err != nil {
		return err
	}
	id := *r.svc.ID(created)
	c.Response().Header().Set(echo.HeaderLocation, r.path+"/"+strconv.FormatInt(id, 10))
	r.alerts.set(c, "created", id)
	return c.JSON(http.StatusCreated, created)
}

// Update replaces the whole row; fields absent from the body become null.
func (r *Resource[T]) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var e T
	if err := decode(c, &e); err != nil {
		return err
	}
	updated, err := r.svc.Update(c.Request().Context(), id, &e)
	if err != nil {
		return err
	}
	r.alerts.set(c, "updated", id)
	return c.JSON(http.StatusOK, updated)
}

// PartialUpdate applies a merge patch: only the non-null body fields change.
func (r *Resource[T]) PartialUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var patch T
	if err := decode(c, &patch); err != nil {
		return err
	}
	updated, err := r.svc.PartialUpdate(c.Request().Context(), id, &patch)
	if err != nil {
		return err
	}
	r.alerts.set(c, "updated", id)
	return c.JSON(http.StatusOK, updated)
}

// List answers a criteria query. Paged queries carry X-Total-Count and Link.
func (r *Resource[T]) List(c echo.Context) error {
	q, err := r.svc.Schema().Parse(c.QueryParams(), r.limits)
	if err != nil {
		return err
	}
	page, err := r.svc.FindPage(c.Request().Context(), q)
	if err != nil {
		return err
	}
	if q.Page.Paged {
		setPageHeaders(c, q.Page, page.Total)
	}
	items := page.Items
	if items == nil {
		items = []*T{}
	}
	return c.JSON(http.StatusOK, items)
}

// Count returns the number of rows matching the criteria; paging and sort
// parameters are accepted and ignored.
func (r *Resource[T]) Count(c echo.Context) error {
	q, err := r.svc.Schema().Parse(c.QueryParams(), r.limits)
	if err != nil {
		return err
	}
	n, err := r.svc.Count(c.Request().Context(), q.Criteria)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (r *Resource[T]) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	e, err := r.svc.FindOne(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (r *Resource[T]) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := r.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	r.alerts.set(c, "deleted", id)
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// decode reads a JSON or merge-patch JSON body into v.
func decode(c echo.Context, v any) error {
	if ct := c.Request().Header.Get(echo.HeaderContentType); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || (mt != echo.MIMEApplicationJSON && mt != mimeMergePatchJSON) {
			return echo.NewHTTPError(http.StatusUnsupportedMediaType, "expected a JSON body")
		}
	}
	if c.Request().ContentLength == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "request body is empty")
	}
	if err := c.Echo().JSONSerializer.Deserialize(c, v); err != nil {
		var herr *echo.HTTPError
		if errors.As(err, &herr) {
			return herr
		}
		return echo.NewHTTPError(http.StatusBadRequest, "malformed JSON body").SetInternal(err)
	}
	return nil
}
