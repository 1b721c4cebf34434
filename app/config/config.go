package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	coreconfig "github.com/m3rciful/filebot/core/config"
	"github.com/m3rciful/filebot/core/database"
)

// AdminConfig lists Telegram user ids allowed to manage content.
type AdminConfig struct {
	IDs []int64 `envconfig:"ADMIN_IDS" required:"true"`
}

// DeliveryConfig tunes how stored files are sent out.
type DeliveryConfig struct {
	PaceMS int `envconfig:"DELIVERY_PACE_MS" default:"300"`
}

// MembershipConfig tunes subscription checks against the Telegram API.
type MembershipConfig struct {
	Attempts     uint64 `envconfig:"MEMBERSHIP_ATTEMPTS" default:"3"`
	RetryDelayMS int    `envconfig:"MEMBERSHIP_RETRY_DELAY_MS" default:"2000"`
}

// HealthConfig controls the auxiliary HTTP surface and keep-alive pings.
// An empty Addr disables the HTTP server; an empty KeepAliveURL disables
// the outbound keep-alive job.
type HealthConfig struct {
	Addr          string `envconfig:"HEALTH_ADDR" default:":8080"`
	KeepAliveURL  string `envconfig:"KEEPALIVE_URL"`
	KeepAliveCron string `envconfig:"KEEPALIVE_CRON" default:"@every 10m"`
}

// Config aggregates everything the bot needs at startup.
type Config struct {
	Core       *coreconfig.Config
	Database   database.Config
	Admins     AdminConfig
	Delivery   DeliveryConfig
	Membership MembershipConfig
	Health     HealthConfig
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return c.Core
}

// Load reads the YAML core config plus app settings from the environment.
// A .env file next to the binary is honoured when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	core, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Core: core}

	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, fmt.Errorf("database env: %w", err)
	}
	if err := envconfig.Process("", &cfg.Admins); err != nil {
		return nil, fmt.Errorf("admin env: %w", err)
	}
	if err := envconfig.Process("", &cfg.Delivery); err != nil {
		return nil, fmt.Errorf("delivery env: %w", err)
	}
	if err := envconfig.Process("", &cfg.Membership); err != nil {
		return nil, fmt.Errorf("membership env: %w", err)
	}
	if err := envconfig.Process("", &cfg.Health); err != nil {
		return nil, fmt.Errorf("health env: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Admins.IDs) == 0 {
		return fmt.Errorf("ADMIN_IDS must name at least one admin")
	}
	for _, id := range cfg.Admins.IDs {
		if id <= 0 {
			return fmt.Errorf("invalid admin id %d", id)
		}
	}
	if cfg.Delivery.PaceMS < 0 {
		return fmt.Errorf("DELIVERY_PACE_MS must be >= 0")
	}
	if cfg.Membership.Attempts == 0 {
		return fmt.Errorf("MEMBERSHIP_ATTEMPTS must be >= 1")
	}
	if cfg.Membership.RetryDelayMS < 0 {
		return fmt.Errorf("MEMBERSHIP_RETRY_DELAY_MS must be >= 0")
	}
	return nil
}
