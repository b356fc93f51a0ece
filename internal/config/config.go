package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        int    `env:"PORT" envDefault:"8080"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// Answer providers
	FinGenieURL string `env:"FINGENIE_API_URL,required"`
	FinGenieKey string `env:"FINGENIE_API_KEY,required"`
	BankoraURL  string `env:"BANKORA_API_URL,required"`

	// Ops notifications (Telegram), disabled when token is empty
	OpsBotToken string `env:"OPS_BOT_TOKEN"`
	OpsChatID   int64  `env:"OPS_TELEGRAM_CHAT_ID"`

	// Admin
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(email string) bool {
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}
