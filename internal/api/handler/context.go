package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/termeloipiac/auth-service/internal/api/middleware"
	"github.com/termeloipiac/auth-service/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing identity means the
// middleware never ran, which is a routing mistake, not a client error —
// but the client still only sees a 401.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
