package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestao-empresarial/management-system/internal/api/middleware"
)

// requireOperator fails with 401 when the Auth middleware left no identity
// on the context, which means the route was wired without it.
func requireOperator(c echo.Context) error {
	username, _ := c.Get(middleware.CtxUsername).(string)
	userID, _ := c.Get(middleware.CtxUserID).(int64)
	if username == "" || userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return nil
}
