// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the server.
type Config struct {
	Addr      string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string

	PlacesAPIKey  string
	PlacesBaseURL string
	PlacesTimeout time.Duration

	POIRadiusMeters  float64
	HighlightsPerDay int

	// Timezone is the zone calendar days are read in; empty means the
	// process local zone.
	Timezone string
}

const (
	defaultAddr             = ":8080"
	defaultDBPath           = "./data/tripwrap.db"
	defaultPlacesTimeout    = 5 * time.Second
	defaultPOIRadiusMeters  = 100.0
	defaultHighlightsPerDay = 8
)

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// Load reads configuration from environment variables, after loading a
// .env file from the working directory if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:             getEnv("ADDR", defaultAddr),
		DBPath:           getEnv("DB_PATH", defaultDBPath),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
		PlacesAPIKey:     getEnv("GOOGLE_MAPS_API_KEY", os.Getenv("GOOGLE_PLACES_API_KEY")),
		PlacesBaseURL:    getEnv("PLACES_BASE_URL", ""),
		PlacesTimeout:    defaultPlacesTimeout,
		POIRadiusMeters:  defaultPOIRadiusMeters,
		HighlightsPerDay: defaultHighlightsPerDay,
		Timezone:         getEnv("TRIP_TIMEZONE", ""),
	}

	var errs []string

	level, err := ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, err.Error())
	}
	cfg.LogLevel = level

	if v := getEnv("PLACES_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("PLACES_TIMEOUT %q is not a duration", v))
		} else {
			cfg.PlacesTimeout = d
		}
	}
	if v := getEnv("POI_RADIUS_METERS", ""); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("POI_RADIUS_METERS %q is not a number", v))
		} else {
			cfg.POIRadiusMeters = r
		}
	}
	if v := getEnv("HIGHLIGHTS_PER_DAY", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("HIGHLIGHTS_PER_DAY %q is not an integer", v))
		} else {
			cfg.HighlightsPerDay = n
		}
	}

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return cfg, nil
}

// validate checks ranges of already parsed values.
func (c *Config) validate() []string {
	var errs []string

	if c.DBPath == "" {
		errs = append(errs, "DB_PATH is required")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if c.PlacesTimeout <= 0 {
		errs = append(errs, "PLACES_TIMEOUT must be positive")
	}
	if c.POIRadiusMeters <= 0 {
		errs = append(errs, "POI_RADIUS_METERS must be positive")
	}
	if c.HighlightsPerDay <= 0 {
		errs = append(errs, "HIGHLIGHTS_PER_DAY must be positive")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("TRIP_TIMEZONE %q is not a known zone", c.Timezone))
		}
	}

	return errs
}

// Location returns the configured zone, or time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// PlacesEnabled reports whether a Places API key is configured.
func (c *Config) PlacesEnabled() bool {
	return c.PlacesAPIKey != ""
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", s)
	}
}
