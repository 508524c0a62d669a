package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	Port string `envconfig:"PORT" default:"3000"`

	DBHost        string `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string `envconfig:"DB_PORT" default:"5432"`
	DBUser        string `envconfig:"DB_USER" required:"true"`
	DBPassword    string `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	DBAutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`

	AdminSecret string `envconfig:"ADMIN_SECRET" required:"true"`
	WatcherKey  string `envconfig:"CHAIN_WATCHER_KEY" required:"true"`

	SessionTTLHours int `envconfig:"SESSION_TTL_HOURS" default:"72"`

	// Game tunables. Weights and prize amounts live in the outcome table;
	// these knobs cover the pool math.
	JackpotPercent          float64 `envconfig:"JACKPOT_PERCENT" default:"0.20"`
	JackpotClampToCap       bool    `envconfig:"JACKPOT_CLAMP_TO_CAP" default:"false"`
	DowngradeToZero         bool    `envconfig:"DOWNGRADE_TO_ZERO" default:"false"`
	TicketPrice             string  `envconfig:"TICKET_PRICE" default:"1"`
	TicketToken             string  `envconfig:"TICKET_TOKEN" default:"SPIN"`
	FreeTicketCooldownHours int     `envconfig:"FREE_TICKET_COOLDOWN_HOURS" default:"24"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
