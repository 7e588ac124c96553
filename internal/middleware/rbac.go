package middleware

import (
	"net/http"

	"restomart/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route group to one role. Roles come from the token via
// JWTMiddleware, so this must run after it.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if got != role {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
