// Package fetcher retrieves pages from the document source.
package fetcher

import (
	"context"
	"time"

	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/infrastructure/retry"
	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/telemetry"
)

// Page is a fetched document.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Fetcher retrieves a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// New builds the configured backend wrapped in retries. The result is
// read-only after construction and safe to share.
func New(cfg Config, log logger.Logger, metrics *telemetry.Metrics) (*Retrying, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var backend Fetcher
	switch cfg.Backend {
	case BackendColly:
		backend = NewCollyFetcher(cfg.UserAgent, cfg.RequestTimeout)
	default:
		backend = NewHTTPFetcher(cfg.UserAgent, cfg.RequestTimeout)
	}
	if cfg.RequestsPerSecond > 0 {
		backend = NewRateLimited(backend, cfg.RequestsPerSecond, cfg.Burst)
	}

	return NewRetrying(backend, cfg, log, metrics), nil
}

// Retrying retries a backend with a fixed delay and a per-attempt timeout.
type Retrying struct {
	next    Fetcher
	name    string
	timeout time.Duration
	policy  retry.Config
	log     logger.Logger
	metrics *telemetry.Metrics
}

// NewRetrying wraps next. cfg supplies attempts, delay, timeout and the
// backend name used in logs and metrics.
func NewRetrying(next Fetcher, cfg Config, log logger.Logger, metrics *telemetry.Metrics) *Retrying {
	cfg = cfg.WithDefaults()
	if log == nil {
		log = logger.NewNop()
	}

	return &Retrying{
		next:    next,
		name:    cfg.Backend,
		timeout: cfg.RequestTimeout,
		policy:  retry.Fixed(cfg.MaxAttempts, cfg.RetryDelay),
		log:     log.With(logger.String("backend", cfg.Backend)),
		metrics: metrics,
	}
}

// Fetch retrieves url. Once started, the attempt sequence is not cut short by
// ctx cancellation; every error is retried. After the last failed attempt a
// *domain.FetchError is returned.
func (r *Retrying) Fetch(ctx context.Context, url string) (*Page, error) {
	ctx = context.WithoutCancel(ctx)

	policy := r.policy
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		r.log.Warn("Fetch attempt failed, retrying",
			logger.String("url", url),
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Error(err),
		)
	}

	var page *Page
	err := retry.Retry(ctx, policy, func(int) error {
		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		start := time.Now()
		p, err := r.next.Fetch(attemptCtx, url)
		r.metrics.FetchAttempt(r.name, err == nil, time.Since(start).Seconds())
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		r.log.Error("Fetch failed", logger.String("url", url), logger.Int("attempts", policy.MaxAttempts), logger.Error(err))
		return nil, &domain.FetchError{URL: url, Attempts: policy.MaxAttempts, Err: err}
	}

	r.log.Debug("Fetched page", logger.String("url", url), logger.Int("bytes", len(page.Body)))
	return page, nil
}

// Name reports the backend in use.
func (r *Retrying) Name() string {
	return r.name
}
