package config

import (
	"log/slog"
	"strings"
	"time"
)

// Config holds runtime settings for the chatlite CLI.
//
// Fields:
//   - DatabaseDSN: path or DSN of the local SQLite database.
//   - DeliveredAfter: delay before a freshly sent message is marked delivered.
//   - SeenAfter: delay before a message visible to its recipient is marked seen.
//   - DeliveryStep: extra stagger added per message when a batch advances.
//   - LogLevel: minimum log level (debug, info, warn, error).
type Config struct {
	DatabaseDSN    string
	DeliveredAfter time.Duration
	SeenAfter      time.Duration
	DeliveryStep   time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "chatlite.db"
	c.DeliveredAfter = 1 * time.Second
	c.SeenAfter = 3 * time.Second
	c.DeliveryStep = 200 * time.Millisecond
	c.LogLevel = "info"
}

// SlogLevel maps the textual LogLevel to a slog.Level, defaulting to Info
// for unknown values.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
