package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/repository"
	"github.com/ridehub/ms-route/internal/service"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Entity  string `json:"entity,omitempty"`
	Params  string `json:"params,omitempty"`
}

// mapError turns a service, criteria or echo error into a status and body.
func mapError(err error) (int, ErrorBody) {
	var (
		verr *service.ValidationError
		cerr *service.ConflictError
		nerr *service.NotFoundError
		merr *criteria.MalformedError
		herr *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorBody{Error: "error.validation", Message: err.Error(), Entity: verr.Entity, Params: verr.Field}
	case errors.As(err, &cerr):
		return http.StatusBadRequest, ErrorBody{Error: "error." + cerr.Key, Message: err.Error(), Entity: cerr.Entity}
	case errors.As(err, &merr):
		return http.StatusBadRequest, ErrorBody{Error: "error.malformedcriteria", Message: err.Error(), Params: merr.Param}
	case errors.As(err, &nerr):
		return http.StatusNotFound, ErrorBody{Error: "error.notfound", Message: err.Error(), Entity: nerr.Entity}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorBody{Error: "error.constraint", Message: "the write violates a database constraint"}
	case errors.As(err, &herr):
		msg := http.StatusText(herr.Code)
		if s, ok := herr.Message.(string); ok {
			msg = s
		}
		return herr.Code, ErrorBody{Error: "error.http", Message: msg}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: "error.internal", Message: "internal server error"}
	}
}

// ErrorHandler is installed as echo's HTTPErrorHandler. Error responses
// carry the alert headers the write endpoints use.
func ErrorHandler(app string, log *slog.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := mapError(err)
		if status >= http.StatusInternalServerError {
			log.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "uri", c.Request().RequestURI, "err", err)
		}
		h := c.Response().Header()
		h.Set("X-"+app+"-error", body.Error)
		if body.Entity != "" {
			h.Set("X-"+app+"-params", body.Entity)
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "write error response", "err", err)
		}
	}
}
