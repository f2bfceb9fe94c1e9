package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret is the base64-encoded symmetric signing key. Required; a
	// value that does not decode aborts startup.
	JWTSecret string `env:"JWT_SECRET, required"`
	// JWTExpirationMs is the token time-to-live in milliseconds.
	JWTExpirationMs int `env:"JWT_EXPIRATION_MS, default=86400000"`

	// SessionMode selects the token transport: "bearer" or "cookie".
	SessionMode string `env:"SESSION_MODE,  default=bearer"`
	// CookieDomain pins the session cookie to the deployment host
	// (cookie mode only).
	CookieDomain string `env:"COOKIE_DOMAIN, default=localhost"`

	// CORSOrigins are the credentialed origins allowed by the CORS layer.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:4200"`

	// LoginMaxAttempts caps failed logins per email within the throttle
	// window before further attempts are rejected. 0 disables throttling.
	LoginMaxAttempts int `env:"LOGIN_MAX_ATTEMPTS, default=10"`

	// AuditWorkers sets the number of audit-trail writer goroutines.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
