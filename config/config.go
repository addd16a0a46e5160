// Package config loads server configuration from environment variables.
// Tuning constants (tick interval, cache TTL, save debounce, on-track
// tolerance) live here rather than as magic numbers at call sites.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/earnwise/earnings-engine/earnings"
)

// Config holds application configuration.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	TickInterval     time.Duration
	CacheTTL         time.Duration
	SaveDebounce     time.Duration
	OnTrackTolerance float64
}

// New loads configuration from environment variables, falling back to the
// engine defaults.
func New() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "earnwise.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		TickInterval:     earnings.DefaultTickInterval,
		CacheTTL:         earnings.DefaultCacheTTL,
		SaveDebounce:     earnings.DefaultSaveDebounce,
		OnTrackTolerance: earnings.DefaultOnTrackTolerance,
	}

	var err error
	if cfg.TickInterval, err = getDuration("TICK_INTERVAL", cfg.TickInterval); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", cfg.CacheTTL); err != nil {
		return nil, err
	}
	if cfg.SaveDebounce, err = getDuration("SAVE_DEBOUNCE", cfg.SaveDebounce); err != nil {
		return nil, err
	}
	if raw, ok := os.LookupEnv("ON_TRACK_TOLERANCE"); ok {
		tol, err := strconv.ParseFloat(raw, 64)
		if err != nil || tol < 1 {
			return nil, fmt.Errorf("ON_TRACK_TOLERANCE must be a number >= 1, got %q", raw)
		}
		cfg.OnTrackTolerance = tol
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}
