package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/termeloipiac/auth-service/internal/api/handler"
	"github.com/termeloipiac/auth-service/internal/api/middleware"
	"github.com/termeloipiac/auth-service/internal/api/session"
	"github.com/termeloipiac/auth-service/internal/core/domain"
	"github.com/termeloipiac/auth-service/internal/core/ports"
	"github.com/termeloipiac/auth-service/internal/core/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	authService ports.AuthService,
	codec *token.Codec,
	carrier session.Carrier,
	audit handler.AuditDispatcher,
	db *mongo.Database,
	rdb *redis.Client,
	corsOrigins []string,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))
	if len(corsOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     corsOrigins,
			AllowCredentials: true,
			AllowHeaders: []string{
				echo.HeaderOrigin, echo.HeaderContentType,
				echo.HeaderAccept, echo.HeaderAuthorization,
			},
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(authService, codec, carrier, audit, log)
	accountHandler := handler.NewAccountHandler()
	authMiddleware := middleware.Auth(carrier, codec, authService, log)

	// --- Auth routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.GET("/auth/session", authHandler.Session)

	// --- Protected account routes ---
	account := apiGroup.Group("/account",
		authMiddleware,
		middleware.RBAC(domain.RoleUser, domain.RoleModerator, domain.RoleAdmin),
	)
	account.GET("/getUserData", accountHandler.GetUserData)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
