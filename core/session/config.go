package session

import (
	"time"
)

// Config holds session manager configuration.
type Config struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns a 7 day idle timeout and a 5 minute touch interval.
func DefaultConfig() Config {
	return Config{
		TTL:           7 * 24 * time.Hour,
		TouchInterval: 5 * time.Minute,
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Config)

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) {
		if ttl > 0 {
			c.TTL = ttl
		}
	}
}

// WithTouchInterval sets the minimum time between expiry extensions.
// Zero extends on every access.
func WithTouchInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval >= 0 {
			c.TouchInterval = interval
		}
	}
}

// WithConfig applies every field of cfg.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		WithTTL(cfg.TTL)(c)
		WithTouchInterval(cfg.TouchInterval)(c)
	}
}
