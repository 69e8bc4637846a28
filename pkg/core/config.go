package core

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Credentials holds API authentication credentials for an exchange.
type Credentials struct {
	// APIKey is the public API key identifier.
	APIKey string `json:"api_key"`
	// APISecret is the private key used for signing requests. Exchanges
	// that authenticate with a bare key header leave it empty.
	APISecret string `json:"api_secret,omitempty"`
}

// Configured returns true if an API key is set.
func (c *Credentials) Configured() bool {
	return c != nil && c.APIKey != ""
}

// Config contains all configuration options for an exchange client.
// It covers authentication, networking, retries, caching, and the optional
// client-side rate limiter and circuit breaker.
type Config struct {
	Exchange    string       `json:"exchange" validate:"required"`
	Credentials *Credentials `json:"credentials,omitempty"`

	// BaseURL overrides the profile's default base URL when non-empty.
	// It is the single mutation point for mainnet/testnet switching.
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// Async disables response caching and marks the client for
	// channel-based use. Request construction is identical in both modes.
	Async bool `json:"async"`

	// Timeout is the maximum duration for a single HTTP attempt.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`

	// MaxRetries is the number of retries after the first attempt.
	// Zero disables the retry loop entirely.
	MaxRetries    int           `json:"max_retries" validate:"min=0"`
	RetryInterval time.Duration `json:"retry_interval" validate:"min=0"`
	// RetryBackoff switches the fixed-interval delay to exponential
	// backoff starting at RetryInterval.
	RetryBackoff bool `json:"retry_backoff"`

	// CacheTTL is how long successful responses are served from the
	// in-memory cache. Ignored in async mode.
	CacheTTL time.Duration `json:"cache_ttl" validate:"min=0"`

	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=0"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=0"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config initialized with the defaults for the
// specified exchange: 10s timeout, retries disabled, 3s retry interval,
// 120s cache TTL, no rate limiter, no circuit breaker.
func DefaultConfig(exchange string) *Config {
	return &Config{
		Exchange:      exchange,
		Timeout:       10 * time.Second,
		MaxRetries:    0,
		RetryInterval: 3 * time.Second,
		CacheTTL:      120 * time.Second,
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.RateLimitRequests > 0 && c.RateLimitPeriod <= 0 {
		return errors.New("RateLimitPeriod must be positive when rate limiting is enabled")
	}
	if c.CircuitBreakerEnabled {
		if c.CircuitBreakerFailThreshold <= 0 {
			return errors.New("CircuitBreakerFailThreshold must be positive when enabled")
		}
		if c.CircuitBreakerSuccessThreshold <= 0 {
			return errors.New("CircuitBreakerSuccessThreshold must be positive when enabled")
		}
		if c.CircuitBreakerTimeout <= 0 {
			return errors.New("CircuitBreakerTimeout must be positive when enabled")
		}
	}
	return nil
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithAsync enables or disables asynchronous mode and returns the config for chaining.
func (c *Config) WithAsync(async bool) *Config {
	c.Async = async
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRetries sets the retry budget and the delay between attempts and
// returns the config for chaining.
func (c *Config) WithRetries(maxRetries int, interval time.Duration) *Config {
	c.MaxRetries = maxRetries
	c.RetryInterval = interval
	return c
}

// WithCacheTTL sets the response cache TTL and returns the config for chaining.
// A zero TTL disables caching.
func (c *Config) WithCacheTTL(ttl time.Duration) *Config {
	c.CacheTTL = ttl
	return c
}

// WithRateLimit sets the client-side rate limit and returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}
