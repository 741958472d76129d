// Package config defines service configuration and how it is loaded.
package config

import (
	"fmt"
	"time"

	"github.com/okian/scorecard/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SessionTTLSeconds is how long an idle session keeps its name list.
	SessionTTLSeconds int `koanf:"session_ttl_seconds"`

	// MaxSessions bounds the number of live sessions held in memory.
	MaxSessions int `koanf:"max_sessions"`

	// SessionSweepSeconds is the interval between expired-session sweeps.
	SessionSweepSeconds int `koanf:"session_sweep_seconds"`

	// PDFCompression compresses PDF content streams.
	PDFCompression bool `koanf:"pdf_compression"`

	// DefaultVariant is the form served at "/".
	DefaultVariant string `koanf:"default_variant"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":8501",
		SessionTTLSeconds:   24 * 60 * 60,
		MaxSessions:         10_000,
		SessionSweepSeconds: 60,
		PDFCompression:      false,
		DefaultVariant:      model.ScoreCard,
	}
}

// SessionTTL returns the idle session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// SessionSweepInterval returns the sweep period.
func (c *Config) SessionSweepInterval() time.Duration {
	return time.Duration(c.SessionSweepSeconds) * time.Second
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SessionTTLSeconds <= 0:
		return fmt.Errorf("%w: session_ttl_seconds must be positive", ErrInvalidConfig)
	case c.MaxSessions <= 0:
		return fmt.Errorf("%w: max_sessions must be positive", ErrInvalidConfig)
	case c.SessionSweepSeconds <= 0:
		return fmt.Errorf("%w: session_sweep_seconds must be positive", ErrInvalidConfig)
	}
	if _, err := model.Lookup(c.DefaultVariant); err != nil {
		return fmt.Errorf("%w: default_variant: %w", ErrInvalidConfig, err)
	}
	return nil
}
