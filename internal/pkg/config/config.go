package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port       string `env:"PORT,        default=5000"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	AppVersion string `env:"APP_VERSION, default=6.3"`

	// CORSOrigins is a comma separated list; "*" allows any origin.
	CORSOrigins string `env:"CORS_ORIGINS, default=*"`

	// StandardServicePrice is charged when a sale carries no price and its
	// client has no special inspection value.
	StandardServicePrice string `env:"STANDARD_SERVICE_PRICE, default=150.00"`
	standardPrice        decimal.Decimal

	Auth     AuthConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Seed     SeedConfig
}

type AuthConfig struct {
	SecretKey string        `env:"SECRET_KEY, default=sistema-gestao-empresarial-2025"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER,            default=sqlite"`
	URL             string        `env:"DATABASE_URL,         default=gestao_empresarial.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=30m"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT,   default=5s"`
}

// RedisConfig configures the optional dashboard stats cache. An empty Addr
// disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	StatsTTL time.Duration `env:"STATS_CACHE_TTL, default=30s"`
}

type SeedConfig struct {
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin123"`
	AdminEmail    string `env:"ADMIN_EMAIL,    default=admin@sistema.com"`
}

// IsDevelopment reports whether human readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || strings.EqualFold(c.Env, "development")
}

// StandardPrice is StandardServicePrice parsed by LoadWith.
func (c *Config) StandardPrice() decimal.Decimal {
	return c.standardPrice
}

// AllowedOrigins splits CORSOrigins into its entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves the configuration from an arbitrary lookuper, which lets
// tests supply a map instead of the process environment.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(cfg.StandardServicePrice))
	if err != nil {
		return nil, fmt.Errorf("STANDARD_SERVICE_PRICE: %w", err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("STANDARD_SERVICE_PRICE must not be negative")
	}
	cfg.standardPrice = price
	return &cfg, nil
}
