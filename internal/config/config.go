// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"MQ_DB_PATH" envDefault:"./data/menuquery.db"`
	ServerHost string `env:"MQ_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"MQ_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"MQ_ENV" envDefault:"development"`
	LogLevel   string `env:"MQ_LOG_LEVEL" envDefault:"info"`

	// BaseURL is the site root relative URLs are resolved against.
	BaseURL string `env:"MQ_BASE_URL" envDefault:"http://localhost:8080"`

	// Cache configuration
	RedisURL     string `env:"MQ_REDIS_URL"`                         // Optional Redis URL for a shared store cache
	CachePrefix  string `env:"MQ_CACHE_PREFIX" envDefault:"mq:"`     // Redis key prefix
	CacheTTL     int    `env:"MQ_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"MQ_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Rate limiting
	RateLimitRPS   float64 `env:"MQ_RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int     `env:"MQ_RATE_LIMIT_BURST" envDefault:"100"`

	// Seeding configuration
	DoSeed bool `env:"MQ_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SlogLevel maps the configured log level onto slog.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("MQ_BASE_URL must be an absolute URL, got %q", cfg.BaseURL)
	}

	return cfg, nil
}
