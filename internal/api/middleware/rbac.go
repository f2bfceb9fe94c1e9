package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/termeloipiac/auth-service/internal/core/domain"
)

// RBAC allows the request through when the authenticated identity holds at
// least one of the given roles. Must run after Auth.
func RBAC(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !identity.HasAnyRole(allowed...) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
