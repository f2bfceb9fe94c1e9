package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/termeloipiac/auth-service/internal/api/metrics"
	"github.com/termeloipiac/auth-service/internal/api/session"
	"github.com/termeloipiac/auth-service/internal/core/domain"
	"github.com/termeloipiac/auth-service/internal/core/ports"
	"github.com/termeloipiac/auth-service/internal/core/token"
)

// AuditDispatcher is the interface the handlers use to enqueue audit events.
type AuditDispatcher interface {
	Enqueue(event ports.AuthEventInput)
}

// AuthHandler exposes login, registration, and session-check endpoints.
type AuthHandler struct {
	auth    ports.AuthService
	codec   *token.Codec
	carrier session.Carrier
	audit   AuditDispatcher
	log     zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, codec *token.Codec, carrier session.Carrier, audit AuditDispatcher, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, codec: codec, carrier: carrier, audit: audit, log: log}
}

// Login authenticates a user and hands out a signed token.
//
// @Summary      Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.LoginDuration)
	defer timer.ObserveDuration()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, signed, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		h.enqueueAudit(c, req.Email, domain.ActionLoginFailed)
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.enqueueAudit(c, identity.Email, domain.ActionLoginSucceeded)
	h.carrier.Attach(c, signed)

	return c.JSON(http.StatusOK, h.loginBody(identity, signed))
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		RoleLabels:  req.Role,
	}
	if err := h.auth.Register(c.Request().Context(), in); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "Error: Email is already in use!"})
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	h.enqueueAudit(c, req.Email, domain.ActionRegistered)
	return c.JSON(http.StatusOK, messageResponse{Message: "User registered successfully!"})
}

// Session reports whether the request carries a currently valid session.
// Always 200 with a boolean body; in cookie mode a valid session also
// refreshes the cookie.
//
// @Summary      Check the current session
// @Tags         auth
// @Produce      json
// @Success      200  {boolean}  boolean
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	raw, ok := h.carrier.Extract(c)
	if !ok {
		metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
		return c.JSON(http.StatusOK, false)
	}

	claims, err := h.codec.Validate(raw)
	if err != nil {
		h.log.Debug().Err(err).Msg("session token rejected")
		return c.JSON(http.StatusOK, false)
	}

	if _, err := h.auth.Identify(c.Request().Context(), claims.Subject); err != nil {
		return c.JSON(http.StatusOK, false)
	}

	h.carrier.Attach(c, raw)
	return c.JSON(http.StatusOK, true)
}

func (h *AuthHandler) loginBody(identity *domain.Identity, signed string) loginResponse {
	body := loginResponse{
		ID:          identity.ID,
		FirstName:   identity.FirstName,
		LastName:    identity.LastName,
		Username:    identity.Username(),
		Email:       identity.Email,
		PhoneNumber: identity.PhoneNumber,
		CreateDate:  identity.CreatedAt,
		Roles:       identity.RoleNames(),
	}
	if h.carrier.Mode() == session.ModeBearer {
		body.AccessToken = signed
		body.TokenType = "Bearer"
	}
	return body
}

func (h *AuthHandler) enqueueAudit(c echo.Context, email string, action domain.AuthAction) {
	if h.audit == nil {
		return
	}
	h.audit.Enqueue(ports.AuthEventInput{
		Email:     email,
		Action:    action,
		Timestamp: time.Now().UTC(),
		RemoteIP:  c.RealIP(),
	})
}
