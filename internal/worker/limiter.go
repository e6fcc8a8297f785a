package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound LLM summary requests. Local analysis is
// never rate limited; only calls that leave the machine are.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a rate limiter.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request is allowed or the context is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request is allowed without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
