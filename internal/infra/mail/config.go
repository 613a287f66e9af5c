package mail

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type MailConfig struct {
	SMTPHost string `env:"MAIL_HOST"`
	SMTPPort string `env:"MAIL_PORT" envDefault:"587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	// FallbackTo receives notifications for owners without an email,
	// matching the single NOTIFICATION_EMAIL the hosted setup used.
	FallbackTo string `env:"NOTIFICATION_EMAIL"`
}

func NewMailConfig() *MailConfig {
	cfg := &MailConfig{}
	if err := env.Parse(cfg); err != nil {
		slog.Error("error parsing mail config", "err", err)
	}
	return cfg
}
