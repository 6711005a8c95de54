package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain error
// kinds to status codes and renders {"error": "...", "code": "..."}.
// Unexpected errors are logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Code: httpCode(he.Code)}
	}

	kind := domain.KindOf(err)
	if status, ok := kindStatus[kind]; ok {
		return status, errorResponse{Error: err.Error(), Code: string(kind)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: string(domain.KindInternal)}
}

var kindStatus = map[domain.Kind]int{
	domain.KindNotFound:           http.StatusNotFound,
	domain.KindInvalidState:       http.StatusConflict,
	domain.KindForbidden:          http.StatusForbidden,
	domain.KindInvalidArgument:    http.StatusBadRequest,
	domain.KindConflict:           http.StatusConflict,
	domain.KindInvalidCredentials: http.StatusUnauthorized,
}

func httpCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(domain.KindInvalidArgument)
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return string(domain.KindForbidden)
	case http.StatusNotFound:
		return string(domain.KindNotFound)
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		if status >= http.StatusInternalServerError {
			return string(domain.KindInternal)
		}
		return "error"
	}
}
