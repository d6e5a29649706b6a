package llm

import (
	"context"
	"errors"
	"time"

	"patentscope/internal/model"
)

// retrySleepFunc is the sleep function used between retries (injectable for tests)
var retrySleepFunc = time.Sleep

// RetryProvider wraps a Provider and retries transport-level failures
// with exponential backoff. Malformed payloads are not retried; only
// ExternalServiceError results are considered transient.
type RetryProvider struct {
	inner      Provider
	maxRetries int
}

// NewRetryProvider creates a retrying wrapper around a provider
func NewRetryProvider(inner Provider, maxRetries int) *RetryProvider {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryProvider{inner: inner, maxRetries: maxRetries}
}

// Name returns the wrapped provider name
func (p *RetryProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *RetryProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete calls the wrapped provider, retrying transient failures
func (p *RetryProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		resp, err := p.inner.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var svcErr *model.ExternalServiceError
		if !errors.As(err, &svcErr) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
		if attempt < p.maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			retrySleepFunc(backoff)
		}
	}
	return nil, lastErr
}
