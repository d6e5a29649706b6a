package llm

import (
	"fmt"
	"strings"
	"time"

	"patentscope/internal/cache"
)

// NewProvider creates a bare provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai", "":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// NewStack creates a provider wrapped with the configured rate
// limiter, retry policy, and completion cache. Wrapping order is
// cache → retry → limiter → provider, so cache hits skip the limiter
// entirely and every retried attempt waits for limiter clearance.
func NewStack(config Config) (Provider, error) {
	p, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	var wrapped Provider = p

	if config.RateLimit > 0 {
		wrapped = NewLimitedProvider(wrapped, NewLimiter(config.RateLimit, config.RateBurst))
	}

	if config.MaxRetries > 0 {
		wrapped = NewRetryProvider(wrapped, config.MaxRetries)
	}

	if config.CacheTTL > 0 {
		ttl := time.Duration(config.CacheTTL) * time.Second
		store := cache.NewMemoryCache(ttl, 2*ttl)
		wrapped = NewCachedProvider(wrapped, store, ttl)
	}

	return wrapped, nil
}
