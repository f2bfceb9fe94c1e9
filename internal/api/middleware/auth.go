package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/termeloipiac/auth-service/internal/api/metrics"
	"github.com/termeloipiac/auth-service/internal/api/session"
	"github.com/termeloipiac/auth-service/internal/core/domain"
	"github.com/termeloipiac/auth-service/internal/core/token"
)

// identityKey is the echo context key the authenticated identity is stored
// under. Handlers retrieve it with IdentityFrom.
const identityKey = "identity"

// IdentityResolver turns a validated token subject into a full identity.
type IdentityResolver interface {
	Identify(ctx context.Context, email string) (*domain.Identity, error)
}

// Auth extracts the token via the session carrier, validates it, and injects
// the resolved identity into the request context. Every failure is a bare
// 401; the reason lives only in logs and metrics.
func Auth(carrier session.Carrier, codec *token.Codec, resolver IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := carrier.Extract(c)
			if !ok {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := codec.Validate(raw)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues(tokenErrorClass(err)).Inc()
				logTokenError(log, c, err)
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			identity, err := resolver.Identify(c.Request().Context(), claims.Subject)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
				log.Warn().Str("subject", claims.Subject).Msg("token subject has no matching account")
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity injected by Auth, if any.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(*domain.Identity)
	return identity, ok
}

// SetIdentity stores an identity on the context. Intended for tests.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}

func tokenErrorClass(err error) string {
	switch {
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrUnsupported):
		return "unsupported"
	default:
		return "invalid"
	}
}

func logTokenError(log zerolog.Logger, c echo.Context, err error) {
	log.Debug().
		Err(err).
		Str("class", tokenErrorClass(err)).
		Str("path", c.Path()).
		Msg("token rejected")
}
