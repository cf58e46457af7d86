// config.go
// ----------
// This file defines the Config structure holding provider credentials and the
// executor's throttle/retry tuning. It is constructed once at startup (from
// the environment or literally in tests) and injected into the bridge; no
// code below the binary entry point reads ambient process state.
package nftbridge

import (
	"os"
	"time"
)

const (
	// DefaultRateLimitDelay is the blanket client-side throttle paid before
	// every outbound attempt, including the first.
	DefaultRateLimitDelay = 1000 * time.Millisecond

	// DefaultMaxRetries is the number of additional attempts after the
	// first for retryable failures.
	DefaultMaxRetries = 3

	// DefaultBaseBackoff is the initial backoff duration; attempt n waits
	// BaseBackoff * 2^n on top of the rate-limit delay.
	DefaultBaseBackoff = 1000 * time.Millisecond

	// DefaultHTTPTimeout bounds a single HTTP exchange.
	DefaultHTTPTimeout = 30 * time.Second
)

// Config carries API keys and executor tuning for the bridge.
type Config struct {
	AlchemyAPIKey string // required
	OpenSeaAPIKey string // optional; absent key means reduced provider limits
	NFTScanAPIKey string // reserved for the planned validation provider

	RateLimitDelay time.Duration // fixed delay before every attempt
	MaxRetries     int           // additional attempts after the first
	BaseBackoff    time.Duration // exponential backoff base
	HTTPTimeout    time.Duration // per-exchange transport timeout
}

// LoadConfig reads configuration from environment variables. Executor tuning
// keeps compiled-in defaults; only credentials come from the environment.
func LoadConfig() Config {
	return Config{
		AlchemyAPIKey: os.Getenv("ALCHEMY_API_KEY"),
		OpenSeaAPIKey: os.Getenv("OPENSEA_API_KEY"),
		NFTScanAPIKey: os.Getenv("NFTSCAN_API_KEY"),
	}
}

// Validate checks that required credentials are present.
func (c Config) Validate() error {
	if c.AlchemyAPIKey == "" {
		return NewConfigurationError("ALCHEMY_API_KEY is required")
	}
	return nil
}

// withDefaults fills zero-valued tuning fields.
func (c Config) withDefaults() Config {
	if c.RateLimitDelay == 0 {
		c.RateLimitDelay = DefaultRateLimitDelay
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BaseBackoff == 0 {
		c.BaseBackoff = DefaultBaseBackoff
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	return c
}
