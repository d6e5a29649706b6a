package llm

import (
	"context"

	"patentscope/internal/model"
)

// Provider defines the interface for text-generation providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a single text completion for a prompt
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a single completion call
type CompletionRequest struct {
	// Prompt is the user-role prompt text
	Prompt string

	// System is an optional system-role instruction
	System string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling randomness (0 uses the provider default)
	Temperature float32
}

// CompletionResponse contains the provider's completion output
type CompletionResponse struct {
	// Text is the generated completion
	Text string

	// Model is the model that generated the response
	Model string

	// InputTokens and OutputTokens track token consumption
	InputTokens  int
	OutputTokens int
}

// TotalTokens returns the combined token count for the call
func (r *CompletionResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// Usage is the token consumption of one or more completion calls
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Usage returns the token consumption of this completion
func (r *CompletionResponse) Usage() Usage {
	return Usage{InputTokens: r.InputTokens, OutputTokens: r.OutputTokens}
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// MaxRetries on transport failures
	MaxRetries int

	// RateLimit caps outbound requests per second per model (0 disables)
	RateLimit float64

	// RateBurst is the limiter burst size
	RateBurst int

	// CacheTTL enables completion memoization when > 0 (seconds)
	CacheTTL int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		Model:      "gpt-4o-mini",
		Timeout:    30,
		MaxTokens:  500,
		MaxRetries: 2,
		RateLimit:  5,
		RateBurst:  6,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxRetries: mc.MaxRetries,
		RateLimit:  mc.RateLimit,
		RateBurst:  mc.RateBurst,
		CacheTTL:   mc.CacheTTL,
	}
}
