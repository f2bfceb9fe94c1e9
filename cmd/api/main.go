// Command api runs the authentication backend: login, registration, and
// session/identity endpoints over a Mongo-backed credential store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/termeloipiac/auth-service/docs"
	"github.com/termeloipiac/auth-service/internal/api"
	"github.com/termeloipiac/auth-service/internal/api/session"
	"github.com/termeloipiac/auth-service/internal/core/service"
	"github.com/termeloipiac/auth-service/internal/core/token"
	"github.com/termeloipiac/auth-service/internal/infrastructure/config"
	mongodb "github.com/termeloipiac/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/termeloipiac/auth-service/internal/infrastructure/db/redis"
	"github.com/termeloipiac/auth-service/internal/infrastructure/queue"
	"github.com/termeloipiac/auth-service/pkg/logger"
)

// @title        termeloiPiac auth service
// @version      1.0
// @description  Username/password authentication with signed bearer tokens and role-based access control.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The signing secret and TTL are fixed for the process lifetime; a secret
	// that does not decode is a configuration error, not a runtime one.
	codec, err := token.NewCodec(cfg.JWTSecret, time.Duration(cfg.JWTExpirationMs)*time.Millisecond)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}

	carrier, err := session.New(cfg.SessionMode, cfg.CookieDomain)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid session configuration")
	}
	log.Info().Str("mode", string(carrier.Mode())).Msg("session transport selected")

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// Seed the closed role enumeration so role resolution never hits an
	// unseeded store in a healthy deployment.
	if err := roleRepo.EnsureRoles(ctx); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	var throttle service.LoginThrottle
	if cfg.LoginMaxAttempts > 0 {
		throttle = redisdb.NewLoginThrottle(rdb, cfg.LoginMaxAttempts)
	}

	authService := service.NewAuthService(userRepo, roleRepo, codec, throttle, log)
	auditService := service.NewAuditService(auditRepo, log)

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(authService, codec, carrier, dispatcher, db, rdb, cfg.CORSOrigins, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("auth service listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
