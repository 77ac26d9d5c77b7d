package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// CORSOrigins is a comma-separated list of origins allowed to call the API.
	CORSOrigins string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
	StaticDir   string `env:"STATIC_DIR"`

	GeocoderBaseURL string        `env:"GEOCODER_BASE_URL" default:"https://api.zippopotam.us"`
	GeocoderTimeout time.Duration `env:"GEOCODER_TIMEOUT" default:"5s"`
	GeocoderRate    float64       `env:"GEOCODER_RATE" default:"5"`
	ZipCacheTTL     time.Duration `env:"ZIP_CACHE_TTL" default:"24h"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"40"`
	BodyLimit      string  `env:"BODY_LIMIT" default:"1M"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AllowedOrigins splits CORSOrigins into its non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	if _, err := url.ParseRequestURI(cfg.GeocoderBaseURL); err != nil {
		return fmt.Errorf("GEOCODER_BASE_URL must be an absolute URL: %w", err)
	}
	if cfg.GeocoderTimeout <= 0 {
		return errors.New("GEOCODER_TIMEOUT must be positive")
	}
	if cfg.GeocoderRate <= 0 {
		return errors.New("GEOCODER_RATE must be positive")
	}
	if cfg.ZipCacheTTL < time.Minute {
		return errors.New("ZIP_CACHE_TTL must be at least 1m")
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return nil
}
