package fetcher

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited spaces out requests to the source.
type RateLimited struct {
	next    Fetcher
	limiter *rate.Limiter
}

// NewRateLimited allows rps requests per second with the given burst.
func NewRateLimited(next Fetcher, rps float64, burst int) *RateLimited {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch waits for a token, then delegates.
func (r *RateLimited) Fetch(ctx context.Context, url string) (*Page, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Fetch(ctx, url)
}
