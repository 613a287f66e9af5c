package cache

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultTTL bounds the staleness window of every cached value.
const DefaultTTL = time.Hour

type Config struct {
	// Addr is the redis host:port. When empty the process falls back
	// to an in-memory store, which is fine for local development but
	// shares nothing between replicas.
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

func NewConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		slog.Error("error parsing cache config", "err", err)
		cfg.TTL = DefaultTTL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return cfg
}
