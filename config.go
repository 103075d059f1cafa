package i18n

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries engine settings loadable from the environment.
// Embed it in an app config for env parsing with caarlos0/env, or load it
// standalone with LoadConfig.
type Config struct {
	DefaultLocale    string `env:"I18N_DEFAULT_LOCALE" envDefault:"en"`
	FallbackLocale   string `env:"I18N_FALLBACK_LOCALE" envDefault:"en"`
	Warnings         bool   `env:"I18N_WARNINGS" envDefault:"true"`
	PlaceholderStart string `env:"I18N_PLACEHOLDER_START" envDefault:"{"`
	PlaceholderEnd   string `env:"I18N_PLACEHOLDER_END" envDefault:"}"`
}

// LoadConfig reads Config from the environment, loading a .env file first
// when one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Options converts the config into engine construction options.
func (c Config) Options() []Option {
	return []Option{
		WithWarnings(c.Warnings),
		WithIdentifiers(c.PlaceholderStart, c.PlaceholderEnd),
	}
}

// RepositoryOptions converts the config into memory repository options.
func (c Config) RepositoryOptions() []MemoryOption {
	return []MemoryOption{
		WithActiveLocale(c.DefaultLocale),
		WithFallbackLocale(c.FallbackLocale),
	}
}
