package sentryreport

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds Sentry connection parameters. An empty DSN disables
// reporting, which is the expected state for local development.
type Config struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	Debug       bool   `env:"SENTRY_DEBUG" envDefault:"false"`
}

// LoadConfig reads Config from the environment, loading .env first when
// present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return cfg, nil
}
