package llm

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-model rate limiting for outbound calls
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait waits for rate limit clearance for the given model
func (l *Limiter) Wait(ctx context.Context, model string) error {
	return l.getLimiter(model).Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (l *Limiter) Allow(model string) bool {
	return l.getLimiter(model).Allow()
}

// getLimiter returns the rate limiter for a model
func (l *Limiter) getLimiter(model string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[model]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[model]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[model] = limiter

	return limiter
}

// SetModelRate sets a custom rate limit for a specific model
func (l *Limiter) SetModelRate(model string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[model] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// LimitedProvider wraps a Provider with per-model rate limiting
type LimitedProvider struct {
	inner   Provider
	limiter *Limiter
}

// NewLimitedProvider creates a rate-limited wrapper around a provider
func NewLimitedProvider(inner Provider, limiter *Limiter) *LimitedProvider {
	return &LimitedProvider{inner: inner, limiter: limiter}
}

// Name returns the wrapped provider name
func (p *LimitedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *LimitedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete waits for limiter clearance before delegating
func (p *LimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := p.limiter.Wait(ctx, req.Model); err != nil {
		return nil, err
	}
	return p.inner.Complete(ctx, req)
}
