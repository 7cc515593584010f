package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Movilidad"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"movilidad"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		// Comma separated list of origins allowed by CORS.
		AllowedOrigins []string `envconfig:"SERVER_ALLOWED_ORIGINS" default:"*"`
	}

	Ledger struct {
		// Maximum total a worker may claim per calendar day (TOPE).
		DailyCap string `envconfig:"LEDGER_DAILY_CAP" default:"45.00"`
	}

	Log struct {
		Mode  string `envconfig:"LOG_MODE" default:"production"`
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}

	Redis struct {
		Addr string        `envconfig:"REDIS_ADDR"`
		TTL  time.Duration `envconfig:"REDIS_TTL" default:"10m"`
	}

	Metrics struct {
		Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Cap returns the configured daily cap rounded to cents.
func (c *Config) Cap() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Ledger.DailyCap)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing daily cap %q: %w", c.Ledger.DailyCap, err)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("daily cap must not be negative: %s", d)
	}

	return d.Round(2), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if _, err := cfg.Cap(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
