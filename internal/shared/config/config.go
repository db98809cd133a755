package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	Version     string `env:"VERSION" envDefault:"0.1.0"`
	Port        int    `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN   string `env:"SENTRY_DSN"`
	DatabaseURL string `env:"DATABASE_URL"`

	// TokenSecret signs session tokens. The server can neither issue nor
	// verify tokens without it, so startup fails when it is missing.
	TokenSecret string `env:"TOKEN_SECRET"`

	// Provider keys are optional at startup; routes that need a missing key
	// fail with a configuration error instead.
	GroqAPIKey       string `env:"GROQ_API_KEY"`
	GroqURL          string `env:"GROQ_URL" envDefault:"https://api.groq.com/openai/v1/chat/completions"`
	HuggingFaceToken string `env:"HUGGINGFACE_API_TOKEN"`
	HuggingFaceURL   string `env:"HUGGINGFACE_URL" envDefault:"https://api-inference.huggingface.co/models/runwayml/stable-diffusion-v1-5"`

	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"60s"`
}

var (
	ErrMissingTokenSecret = errors.New("TOKEN_SECRET is required")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
)

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.TokenSecret == "" {
		return nil, ErrMissingTokenSecret
	}
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}
