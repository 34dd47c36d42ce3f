// Package config reads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DataDir           string `env:"DATA_DIR" envDefault:"./data"`
	DBPath            string `env:"DB_PATH"`
	ListenAddr        string `env:"LISTEN_ADDR" envDefault:":8888"`
	GarminAPIURL      string `env:"GARMIN_API_URL" envDefault:"http://garmin-api:8081"`
	ImportDir         string `env:"IMPORT_DIR"`
	SyncSchedule      string `env:"SYNC_SCHEDULE" envDefault:"@hourly"`
	GeocoderURL       string `env:"GEOCODER_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocoderUserAgent string `env:"GEOCODER_USER_AGENT" envDefault:"garmin-wrapped/1.0"`
	GeocodeEnabled    bool   `env:"GEOCODE_ENABLED" envDefault:"true"`
	ReviewYear        int    `env:"REVIEW_YEAR" envDefault:"0"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file from the working directory if there is one, then
// parses the environment. The returned bool reports whether .env was found.
func Load() (*Config, bool, error) {
	found := true
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("load .env: %w", err)
		}
		found = false
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, found, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "garmin.db")
	}
	if cfg.ImportDir == "" {
		cfg.ImportDir = filepath.Join(cfg.DataDir, "activities")
	}
	if cfg.ReviewYear < 0 {
		return nil, found, fmt.Errorf("REVIEW_YEAR must not be negative, got %d", cfg.ReviewYear)
	}
	return &cfg, found, nil
}

// Year is the review year: REVIEW_YEAR when set, otherwise the UTC year of now.
func (c *Config) Year(now time.Time) int {
	if c.ReviewYear > 0 {
		return c.ReviewYear
	}
	return now.UTC().Year()
}

// Level maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
