package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BAKERY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	CartStorageRedis  = "redis"
	CartStorageMemory = "memory"
)

type Config struct {
	App            AppConfig
	DB             DBConfig
	Redis          RedisConfig
	FeatureFlags   FeatureFlagsConfig
	Storefront     StorefrontConfig
	OrderRateLimit OrderRateLimitConfig
	CORS           CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Storefront.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BAKERY_APP_ENV" default:"dev"`
	Port         string `envconfig:"BAKERY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BAKERY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BAKERY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"BAKERY_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"BAKERY_DB_DSN"`

	MaxOpenConns    int           `envconfig:"BAKERY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BAKERY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BAKERY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BAKERY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) normalize() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case DBDriverSQLite:
		if db.DSN == "" {
			db.DSN = "file:bakery.db?_foreign_keys=on"
		}
	case DBDriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("BAKERY_DB_DSN is required for the %s driver", DBDriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"BAKERY_REDIS_URL"`
	Address      string        `envconfig:"BAKERY_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"BAKERY_REDIS_PASSWORD"`
	DB           int           `envconfig:"BAKERY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BAKERY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BAKERY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BAKERY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BAKERY_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"BAKERY_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BAKERY_AUTO_MIGRATE" default:"false"`
	SeedCatalog bool `envconfig:"BAKERY_SEED_CATALOG" default:"false"`
}

type StorefrontConfig struct {
	Port           string        `envconfig:"BAKERY_STOREFRONT_PORT" default:"8081"`
	BackendURL     string        `envconfig:"BAKERY_STOREFRONT_BACKEND_URL" default:"http://localhost:8080"`
	BackendTimeout time.Duration `envconfig:"BAKERY_STOREFRONT_BACKEND_TIMEOUT" default:"10s"`
	CartStorage    string        `envconfig:"BAKERY_STOREFRONT_CART_STORAGE" default:"redis"`
	SessionCookie  string        `envconfig:"BAKERY_STOREFRONT_SESSION_COOKIE" default:"kah_session"`
	SessionIdleTTL time.Duration `envconfig:"BAKERY_STOREFRONT_SESSION_IDLE_TTL" default:"2h"`
	SweepInterval  time.Duration `envconfig:"BAKERY_STOREFRONT_SWEEP_INTERVAL" default:"10m"`
	SecureCookie   bool          `envconfig:"BAKERY_STOREFRONT_SECURE_COOKIE" default:"false"`
}

func (s *StorefrontConfig) validate() error {
	s.CartStorage = strings.ToLower(strings.TrimSpace(s.CartStorage))
	switch s.CartStorage {
	case CartStorageRedis, CartStorageMemory:
	default:
		return fmt.Errorf("unsupported cart storage %q", s.CartStorage)
	}
	if strings.TrimSpace(s.BackendURL) == "" {
		return fmt.Errorf("BAKERY_STOREFRONT_BACKEND_URL is required")
	}
	s.BackendURL = strings.TrimRight(s.BackendURL, "/")
	return nil
}

// OrderRateLimitConfig caps order creation attempts per client IP and per
// customer email.
type OrderRateLimitConfig struct {
	Window     time.Duration `envconfig:"BAKERY_ORDER_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit    int           `envconfig:"BAKERY_ORDER_RATE_LIMIT_IP_LIMIT" default:"10"`
	EmailLimit int           `envconfig:"BAKERY_ORDER_RATE_LIMIT_EMAIL_LIMIT" default:"5"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BAKERY_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
