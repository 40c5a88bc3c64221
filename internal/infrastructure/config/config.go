package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	OAuth OAuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
	// TokenTTL bounds the session token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`
	// StoreTimeout bounds every credential-store lookup during login; on
	// expiry the attempt fails with a retryable error.
	StoreTimeout time.Duration `env:"AUTH_STORE_TIMEOUT, default=5s"`
	AuditWorkers int           `env:"AUDIT_WORKERS, default=4"`
}

type OAuthConfig struct {
	ClientID     string `env:"OAUTH_CLIENT_ID"`
	ClientSecret string `env:"OAUTH_CLIENT_SECRET"`
	RedirectURL  string `env:"OAUTH_REDIRECT_URL, default=http://localhost:8080/auth/oauth/github/callback"`
	// Timeout bounds the full handshake (code exchange + user fetch).
	Timeout time.Duration `env:"OAUTH_TIMEOUT, default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=poseidon"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
