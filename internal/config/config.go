package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is the deployed backend every binary talks to unless overridden
const DefaultAPIURL = "https://frog-cafe-production.up.railway.app/"

// Config holds all configuration for the application
type Config struct {
	// API client configuration
	API APIConfig

	// Session storage configuration
	Session SessionConfig

	// Logging configuration
	Logging LoggingConfig

	// Web frontend configuration
	Web WebConfig
}

// APIConfig holds backend client configuration
type APIConfig struct {
	URL          string        `env:"FROGCAFE_API_URL" envDefault:"https://frog-cafe-production.up.railway.app/" validate:"required,url"`
	Redirects    string        `env:"FROGCAFE_REDIRECTS" envDefault:"single-hop" validate:"oneof=none single-hop full"`
	MaxRedirects int           `env:"FROGCAFE_MAX_REDIRECTS" envDefault:"10" validate:"min=1,max=50"`
	Timeout      time.Duration `env:"FROGCAFE_TIMEOUT" envDefault:"30s" validate:"min=0"`
}

// SessionConfig holds token storage configuration for the CLI
type SessionConfig struct {
	Store string `env:"FROGCAFE_TOKEN_STORE" envDefault:"keyring" validate:"oneof=keyring file"`
	File  string `env:"FROGCAFE_SESSION_FILE"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error fatal panic disabled off"`
	Format string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"` // json, console
}

// WebConfig holds the web frontend configuration
type WebConfig struct {
	Addr           string        `env:"WEB_ADDR" envDefault:":8080" validate:"required"`
	BasePath       string        `env:"WEB_BASE_PATH" envDefault:"/" validate:"startswith=/"`
	CookieSecure   bool          `env:"WEB_COOKIE_SECURE" envDefault:"false"`
	AllowedOrigins []string      `env:"WEB_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	DisplayRefresh time.Duration `env:"WEB_DISPLAY_REFRESH" envDefault:"5s" validate:"min=1s"`
}

// Load loads configuration from .env files and environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return FromEnv()
}

// FromEnv parses and validates the process environment without reading .env files
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
