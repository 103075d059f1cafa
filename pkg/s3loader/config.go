package s3loader

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds S3 connection parameters for the catalog bucket. Fields carry
// env tags, so the config can be embedded in an app config or loaded
// standalone with LoadConfig.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"S3_BUCKET,required"`

	// AccessKey is the AWS access key ID (required).
	AccessKey string `env:"S3_ACCESS_KEY,required"`

	// SecretKey is the AWS secret access key (required).
	SecretKey string `env:"S3_SECRET_KEY,required"`

	// Endpoint is a custom S3 endpoint URL (optional, for MinIO or other
	// S3-compatible services).
	Endpoint string `env:"S3_ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"S3_REGION" envDefault:"us-east-1"`

	// Prefix narrows the listing to catalog objects, e.g. "locales/".
	Prefix string `env:"S3_I18N_PREFIX"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"S3_PATH_STYLE" envDefault:"false"`
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
}

func (c Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("%w: credentials are required", ErrInvalidConfig)
	}
	return nil
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
