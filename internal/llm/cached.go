package llm

import (
	"context"
	"encoding/json"
	"time"

	"patentscope/internal/cache"
)

// CachedProvider memoizes completions keyed by model and prompt.
// Useful for batch runs where several inventions share triage or
// review prompts; identical prompts within the TTL hit the cache
// instead of the service.
type CachedProvider struct {
	inner Provider
	store cache.Cache
	ttl   time.Duration
}

// NewCachedProvider creates a memoizing wrapper around a provider
func NewCachedProvider(inner Provider, store cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, store: store, ttl: ttl}
}

// Name returns the wrapped provider name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *CachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete returns a cached completion when available
func (p *CachedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	key := cache.Key(req.Model, req.System+"\x00"+req.Prompt)

	if data, found := p.store.Get(key); found {
		var resp CompletionResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
		// Corrupt entry: drop it and fall through to the provider
		_ = p.store.Delete(key)
	}

	resp, err := p.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		_ = p.store.Set(key, data, p.ttl)
	}

	return resp, nil
}
