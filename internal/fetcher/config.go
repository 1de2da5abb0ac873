package fetcher

import (
	"time"

	infraconfig "github.com/verge88/api-npa3/infrastructure/config"
)

// Backends.
const (
	BackendHTTP  = "http"
	BackendColly = "colly"
)

// Default configuration values.
const (
	defaultBackend        = BackendHTTP
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultRequestTimeout = 30 * time.Second
	defaultMaxAttempts    = 3
	defaultRetryDelay     = 2 * time.Second
	defaultRPS            = 2.0
	defaultBurst          = 1

	// maxResponseBodyBytes caps how much of a page is read.
	maxResponseBodyBytes = 10 * 1024 * 1024
)

// Config holds page fetching configuration.
type Config struct {
	Backend        string        `env:"NPA_FETCH_BACKEND"         yaml:"backend"`
	UserAgent      string        `env:"NPA_FETCH_USER_AGENT"      yaml:"user_agent"`
	RequestTimeout time.Duration `env:"NPA_FETCH_REQUEST_TIMEOUT" yaml:"request_timeout"`
	MaxAttempts    int           `env:"NPA_FETCH_MAX_ATTEMPTS"    yaml:"max_attempts"`
	RetryDelay     time.Duration `env:"NPA_FETCH_RETRY_DELAY"     yaml:"retry_delay"`

	// RequestsPerSecond limits requests to the source. Negative disables
	// the limit.
	RequestsPerSecond float64 `env:"NPA_FETCH_RPS" yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = defaultBackend
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = defaultRPS
	}
	if c.Burst <= 0 {
		c.Burst = defaultBurst
	}
	return c
}

// Validate rejects unknown backends. An empty backend means the default.
func (c Config) Validate() error {
	if c.Backend == "" {
		return nil
	}
	return infraconfig.ValidateOneOf("fetcher.backend", c.Backend, BackendHTTP, BackendColly)
}
