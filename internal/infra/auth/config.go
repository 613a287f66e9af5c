package auth

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// IssuerURL points at the OIDC issuer whose JWKS signs admin
	// tokens. When empty, tokens are parsed without verification;
	// only acceptable for local development and tests.
	IssuerURL string `env:"AUTH_ISSUER"`
}

func NewConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		slog.Error("error parsing auth config", "err", err)
	}
	return cfg
}
