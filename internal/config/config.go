package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const devJWTSecret = "dev-secret-change-in-production"

var (
	ErrDevSecretInProduction = errors.New("JWT_SECRET_KEY must be set in production environment")
	ErrMissingAPIKey         = errors.New("OPENAI_API_KEY must be set in production environment")
	ErrUnsupportedDriver     = errors.New("DATABASE_DRIVER must be mysql or sqlite")
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Env             string        `env:"ENV" envDefault:"development"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"mysql"`
	DatabaseDSN    string `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/sitecraft?parseTime=true"`

	JWTSecret string        `env:"JWT_SECRET_KEY" envDefault:"dev-secret-change-in-production"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	// OpenAI-compatible chat completion endpoint; OpenRouter by default.
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"OPENAI_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	OpenAIModel      string        `env:"OPENAI_MODEL" envDefault:"openai/gpt-3.5-turbo"`
	OpenAIMaxTokens  int64         `env:"OPENAI_MAX_TOKENS" envDefault:"600"`
	OpenAITimeout    time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`
	OpenAIMaxRetries int           `env:"OPENAI_MAX_RETRIES" envDefault:"0"`

	AuthRateLimitRPS   float64 `env:"AUTH_RATE_LIMIT_RPS" envDefault:"5"`
	AuthRateLimitBurst int     `env:"AUTH_RATE_LIMIT_BURST" envDefault:"10"`
}

// IsProduction returns true if running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load parses environment variables into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.DatabaseDriver {
	case "mysql", "sqlite":
	default:
		return ErrUnsupportedDriver
	}

	if !c.IsProduction() {
		return nil
	}
	if c.JWTSecret == devJWTSecret {
		return ErrDevSecretInProduction
	}
	if c.OpenAIAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
