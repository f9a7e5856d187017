package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ridehub/ms-route/internal/model"
	"github.com/ridehub/ms-route/internal/service"
)

// SimpleRole serves the flattened staff+role endpoints under {path}/simple.
type SimpleRole[T any] struct {
	roles  *service.StaffRoles[T]
	path   string
	alerts Alerts
}

func NewSimpleRole[T any](roles *service.StaffRoles[T], path string, alerts Alerts) *SimpleRole[T] {
	return &SimpleRole[T]{roles: roles, path: path, alerts: alerts}
}

func (s *SimpleRole[T]) Register(g *echo.Group) {
	g.POST("/simple", s.Create)
	g.PUT("/simple/:id", s.Update)
	g.GET("/simple/:id", s.Get)
}

func (s *SimpleRole[T]) Create(c echo.Context) error {
	var req model.SimpleStaffRole
	if err := decode(c, &req); err != nil {
		return err
	}
	out, err := s.roles.CreateSimple(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, s.path+"/simple/"+strconv.FormatInt(*out.ID, 10))
	s.alerts.set(c, "created", *out.ID)
	return c.JSON(http.StatusCreated, out)
}

func (s *SimpleRole[T]) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.SimpleStaffRole
	if err := decode(c, &req); err != nil {
		return err
	}
	out, err := s.roles.UpdateSimple(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	s.alerts.set(c, "updated", id)
	return c.JSON(http.StatusOK, out)
}

func (s *SimpleRole[T]) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := s.roles.FindSimple(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
