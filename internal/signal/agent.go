// Package signal implements the six evidence agents. All six share
// one shape: build a dimension-specific prompt, call the
// text-generation service once, parse the structured response, and
// map it onto a DimensionScore. They differ only in prompt content
// and guardrail policy, so the package models them as one Agent type
// driven by per-dimension Specs rather than six hand-written variants.
package signal

import (
	"context"
	"encoding/json"
	"errors"

	"patentscope/internal/guard"
	"patentscope/internal/llm"
	"patentscope/internal/model"
)

// Spec configures one evidence agent
type Spec struct {
	// Dimension is the axis this agent scores
	Dimension model.Dimension

	// Name identifies the agent in telemetry, errors, and evidence
	Name string

	// Prompt builds the dimension-specific prompt from the record
	Prompt func(*model.CanonicalRecord) string

	// WantConfidence marks agents whose prompt asks the model for an
	// explicit confidence figure; the others default to 0.5.
	WantConfidence bool

	// Guardrail routes the output through validation with fallback
	// substitution. When false, parse failures propagate uncaught.
	Guardrail bool
}

// Agent computes one dimension score from the canonical record.
// Agents are pure functions of the record apart from the single
// outbound service call; concurrent agents share no mutable state.
type Agent struct {
	spec          Spec
	provider      llm.Provider
	model         string
	maxTokens     int
	minConfidence float64
	fallback      model.FallbackConfig
}

// NewAgent creates an evidence agent for the given spec
func NewAgent(spec Spec, provider llm.Provider, modelName string, guardrail model.GuardrailConfig, fallback model.FallbackConfig) *Agent {
	return &Agent{
		spec:          spec,
		provider:      provider,
		model:         modelName,
		maxTokens:     300,
		minConfidence: guardrail.MinConfidence,
		fallback:      fallback,
	}
}

// Name returns the agent name
func (a *Agent) Name() string { return a.spec.Name }

// Dimension returns the dimension this agent scores
func (a *Agent) Dimension() model.Dimension { return a.spec.Dimension }

// Result is the outcome of one signal computation
type Result struct {
	Score *model.DimensionScore
	Usage llm.Usage

	// Recovered is set when validation failed and the fallback score
	// was substituted; the pipeline records it as a quality flag.
	Recovered *model.ValidationError
}

// ComputeSignal produces this agent's dimension score.
// Transport failures always propagate; what happens on a bad payload
// depends on the guardrail flag: guardrailed agents substitute the
// configured fallback score, unguarded agents return the error.
func (a *Agent) ComputeSignal(ctx context.Context, rec *model.CanonicalRecord) (*Result, error) {
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:    a.spec.Prompt(rec),
		Model:     a.model,
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	payload := []byte(llm.ExtractJSONPayload(resp.Text))

	if a.spec.Guardrail {
		score, err := guard.ValidateScore(payload, a.spec.Name, a.minConfidence)
		if err != nil {
			var vErr *model.ValidationError
			if errors.As(err, &vErr) {
				return &Result{
					Score:     a.fallback.Score(a.spec.Name),
					Usage:     resp.Usage(),
					Recovered: vErr,
				}, nil
			}
			return nil, err
		}
		return &Result{Score: score, Usage: resp.Usage()}, nil
	}

	score, err := a.parseLoose(payload)
	if err != nil {
		return nil, err
	}
	return &Result{Score: score, Usage: resp.Usage()}, nil
}

// looseSignal mirrors the permissive parse used by unguarded agents:
// missing fields fall back to defaults instead of failing validation.
type looseSignal struct {
	AggregateScore *float64 `json:"aggregate_score"`
	Sources        []string `json:"sources"`
	Notes          string   `json:"notes"`
	Confidence     *float64 `json:"confidence"`
}

func (a *Agent) parseLoose(payload []byte) (*model.DimensionScore, error) {
	var parsed looseSignal
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, &model.MalformedResponseError{Agent: a.spec.Name, Err: err}
	}

	score := a.fallback.RawScore
	if parsed.AggregateScore != nil {
		score = *parsed.AggregateScore
	}

	sources := parsed.Sources
	if len(sources) == 0 {
		sources = []string{"LLM analysis"}
	}

	confidence := 0.5
	if a.spec.WantConfidence && parsed.Confidence != nil {
		confidence = *parsed.Confidence
	}

	return &model.DimensionScore{
		RawScore:        score,
		NormalizedScore: model.Normalize(score),
		Sources:         sources,
		Agent:           a.spec.Name,
		Notes:           parsed.Notes,
		Confidence:      confidence,
	}, nil
}
