// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the top-level configuration for the todo API server.
type Config struct {
	Port      string     `env:"PORT" envDefault:"8080"`
	GinMode   string     `env:"GIN_MODE" envDefault:"release"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Auth      AuthConfig
	DB        DBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Todos     TodosConfig
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"30m"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

// DBConfig holds relational store settings.
// DatabaseURL takes precedence over the individual connection fields.
type DBConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"./todo.db"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	RunMigrations   bool          `env:"RUN_MIGRATIONS" envDefault:"false"`
}

// RedisConfig holds the optional Redis connection. An empty Host disables Redis.
type RedisConfig struct {
	Host             string        `env:"REDIS_HOST"`
	Port             string        `env:"REDIS_PORT" envDefault:"6379"`
	Password         string        `env:"REDIS_PASSWORD"`
	DB               int           `env:"REDIS_DB" envDefault:"0"`
	IdentityCacheTTL time.Duration `env:"IDENTITY_CACHE_TTL" envDefault:"5m"`
}

// Addr returns host:port for the Redis client.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// RateLimitConfig bounds requests per client IP on the unauthenticated auth endpoints.
// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is honoured.
// When empty, the client IP is always the connection's remote address.
type RateLimitConfig struct {
	Requests       int           `env:"RATE_LIMIT_REQUESTS" envDefault:"20"`
	Window         time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	TrustedProxies []string      `env:"TRUSTED_PROXIES" envSeparator:","`
}

// CORSConfig lists allowed origins. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// TodosConfig holds task listing limits.
type TodosConfig struct {
	MaxLimit int `env:"TODO_MAX_LIMIT" envDefault:"10"`
}

// Load parses the process environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: want postgres or sqlite", c.DB.Driver)
	}
	if c.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.Auth.JWTTTL)
	}
	if c.Todos.MaxLimit <= 0 {
		return fmt.Errorf("TODO_MAX_LIMIT must be positive, got %d", c.Todos.MaxLimit)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}
