package model

// Config holds the complete patentscope configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Guardrail   GuardrailConfig   `yaml:"guardrail" json:"guardrail"`
	Fallback    FallbackConfig    `yaml:"fallback" json:"fallback"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Pricing     PricingConfig     `yaml:"pricing" json:"pricing"`
}

// LLMConfig configures the text-generation provider boundary
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string `yaml:"provider" json:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" json:"model"`

	// APIKey for OpenAI/Anthropic (prefer env vars)
	APIKey string `yaml:"api_key,omitempty" json:"api_key,omitempty"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// Timeout per API request, in seconds
	Timeout int `yaml:"timeout" json:"timeout"`

	// MaxRetries on transport-level failures (0 disables retry)
	MaxRetries int `yaml:"max_retries" json:"max_retries"`

	// RateLimit caps outbound requests per second per model
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"`

	// RateBurst is the burst size for the rate limiter
	RateBurst int `yaml:"rate_burst" json:"rate_burst"`

	// CacheTTL enables in-memory completion memoization when > 0 (seconds)
	CacheTTL int `yaml:"cache_ttl" json:"cache_ttl"`
}

// GuardrailScope selects which agents route through the output guardrail
type GuardrailScope string

const (
	// GuardrailAll applies validation and fallback to every signal agent
	GuardrailAll GuardrailScope = "all"

	// GuardrailLegacy restores the historical behavior where only the
	// tech_momentum and market_gravity agents were guardrailed and the
	// other four propagated parse failures uncaught.
	GuardrailLegacy GuardrailScope = "legacy"
)

// GuardrailConfig configures output validation for signal agents
type GuardrailConfig struct {
	// MinConfidence rejects scores whose reported confidence is lower
	MinConfidence float64 `yaml:"min_confidence" json:"min_confidence"`

	// RequiredDimensions is the expected batch size
	RequiredDimensions int `yaml:"required_dimensions" json:"required_dimensions"`

	// Scope selects which agents are guardrailed ("all" or "legacy")
	Scope GuardrailScope `yaml:"scope" json:"scope"`
}

// FallbackConfig is the named default-score policy substituted when a
// guardrailed agent's output fails validation.
type FallbackConfig struct {
	RawScore   float64 `yaml:"raw_score" json:"raw_score"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
	Source     string  `yaml:"source" json:"source"`
	Notes      string  `yaml:"notes" json:"notes"`
}

// Score builds the fallback DimensionScore for the given agent
func (f FallbackConfig) Score(agent string) *DimensionScore {
	return &DimensionScore{
		RawScore:        f.RawScore,
		NormalizedScore: Normalize(f.RawScore),
		Sources:         []string{f.Source},
		Agent:           agent,
		Notes:           f.Notes,
		Confidence:      f.Confidence,
	}
}

// ConcurrencyConfig configures batch evaluation parallelism
type ConcurrencyConfig struct {
	// BatchWorkers is the number of inventions evaluated in parallel
	BatchWorkers int `yaml:"batch_workers" json:"batch_workers"`
}

// PricingConfig converts token usage into estimated cost
type PricingConfig struct {
	CostPer1KInput  float64 `yaml:"cost_per_1k_input" json:"cost_per_1k_input"`
	CostPer1KOutput float64 `yaml:"cost_per_1k_output" json:"cost_per_1k_output"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:   "openai",
			Model:      "gpt-4o-mini",
			Timeout:    30,
			MaxRetries: 2,
			RateLimit:  5,
			RateBurst:  6,
			CacheTTL:   0,
		},
		Guardrail: GuardrailConfig{
			MinConfidence:      0.3,
			RequiredDimensions: 6,
			Scope:              GuardrailAll,
		},
		Fallback: FallbackConfig{
			RawScore:   2.5,
			Confidence: 0.3,
			Source:     "fallback_default",
			Notes:      "Validation error occurred; using default score",
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Pricing: PricingConfig{
			CostPer1KInput:  0.015,
			CostPer1KOutput: 0.06,
		},
	}
}
