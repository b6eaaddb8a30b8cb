package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken string `env:"BOT_TOKEN,required,notEmpty"`

	// Payment source: Postgres when DATABASE_URL is set, otherwise an
	// in-memory collection seeded from EXPORT_FILE.
	DatabaseURL string `env:"DATABASE_URL"`
	ExportFile  string `env:"EXPORT_FILE"`

	// Reporting timezone (IANA name).
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`

	// Admin
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DatabaseURL == "" && cfg.ExportFile == "" {
		return nil, fmt.Errorf("either DATABASE_URL or EXPORT_FILE must be set")
	}
	return cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
