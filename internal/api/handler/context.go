package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// Context keys set by middleware.Auth.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// principal extracts the caller injected by the Auth middleware. A missing id
// means the route was mounted without Auth, which is reported as 401.
func principal(c echo.Context) (userID int64, role string, err error) {
	userID, _ = c.Get(CtxUserID).(int64)
	role, _ = c.Get(CtxRole).(string)
	if userID <= 0 || role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidIDValue
	}
	return id, nil
}
