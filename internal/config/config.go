package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Telegram (required for serve only)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	// Model storage
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// Cache. SweepPeriod should stay well below CacheTTL so staleness is bounded.
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"20s"`
	SweepPeriod time.Duration `env:"SWEEP_PERIOD" envDefault:"3s"`

	// Chat commands
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!charlie"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
