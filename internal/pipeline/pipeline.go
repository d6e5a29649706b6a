// Package pipeline orchestrates the evaluation stages:
// triage, parallel signal gathering, validation, deterministic
// scoring, review, SWOT synthesis, and final assembly. Data flows
// strictly downstream; each stage constructs a new immutable value.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"patentscope/internal/guard"
	"patentscope/internal/llm"
	"patentscope/internal/model"
	"patentscope/internal/review"
	"patentscope/internal/score"
	"patentscope/internal/signal"
	"patentscope/internal/swot"
	"patentscope/internal/triage"
)

// Pipeline runs the complete evaluation
type Pipeline struct {
	normalizer  *triage.Normalizer
	agents      []*signal.Agent
	aggregator  *score.Aggregator
	reviewer    *review.Reviewer
	synthesizer *swot.Synthesizer
	guardrail   model.GuardrailConfig
	pricing     model.PricingConfig
	hooks       Hooks
}

// New creates a pipeline from configuration and a provider. Pass nil
// hooks to disable observability.
func New(cfg *model.Config, provider llm.Provider, hooks Hooks) (*Pipeline, error) {
	if hooks == nil {
		hooks = NopHooks{}
	}

	aggregator, err := score.NewAggregator()
	if err != nil {
		return nil, err
	}

	var agents []*signal.Agent
	for _, spec := range signal.Specs(cfg.Guardrail.Scope) {
		agents = append(agents, signal.NewAgent(spec, provider, cfg.LLM.Model, cfg.Guardrail, cfg.Fallback))
	}

	return &Pipeline{
		normalizer:  triage.NewNormalizer(provider, cfg.LLM.Model),
		agents:      agents,
		aggregator:  aggregator,
		reviewer:    review.NewReviewer(provider, cfg.LLM.Model),
		synthesizer: swot.NewSynthesizer(),
		guardrail:   cfg.Guardrail,
		pricing:     cfg.Pricing,
		hooks:       hooks,
	}, nil
}

// Evaluate runs the full pipeline for one invention. The caller
// receives either a complete EvaluationResult (possibly carrying
// quality flags) or an error; partial results are never returned.
func (p *Pipeline) Evaluate(ctx context.Context, in *model.InventionInput) (*model.EvaluationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	telemetry := NewTelemetry(p.pricing)

	// Stage 1: triage. Fatal on failure; every downstream agent
	// depends on the canonical record.
	p.hooks.AgentStarted(triage.AgentName)
	rec, usage, err := p.normalizer.Triage(ctx, in)
	telemetry.Record(triage.AgentName, usage)
	p.hooks.AgentEnded(triage.AgentName, usage.InputTokens, usage.OutputTokens)
	if err != nil {
		return nil, err
	}

	// Stage 2: signal fan-out. All six agents run concurrently and
	// the join waits for every one of them; a failing agent does not
	// cancel its peers.
	results := make([]*signal.Result, len(p.agents))

	var g errgroup.Group
	for i, ag := range p.agents {
		i, ag := i, ag
		g.Go(func() error {
			p.hooks.AgentStarted(ag.Name())
			res, err := ag.ComputeSignal(ctx, rec)
			if err != nil {
				return err
			}
			results[i] = res
			telemetry.Record(ag.Name(), res.Usage)
			p.hooks.AgentEnded(ag.Name(), res.Usage.InputTokens, res.Usage.OutputTokens)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("signal gathering: %w", err)
	}

	flags := []string{} // non-nil so the result always serializes flags as a list
	scores := make(map[model.Dimension]*model.DimensionScore, len(p.agents))
	batch := make([]*model.DimensionScore, 0, len(p.agents))
	for i, res := range results {
		dim := p.agents[i].Dimension()
		scores[dim] = res.Score
		batch = append(batch, res.Score)
		if res.Recovered != nil {
			p.hooks.ValidationError(res.Recovered.Agent, res.Recovered.Message)
			flags = append(flags, fmt.Sprintf("VALIDATION_ERROR in %s: %s", res.Recovered.Agent, res.Recovered.Message))
		}
	}

	// Stage 3: batch validation. Issues are advisory and surface as
	// quality flags; the evaluation continues.
	if ok, issues := guard.ValidateBatch(batch, p.guardrail.RequiredDimensions); !ok {
		p.hooks.QualityIssues("signals_batch", issues)
		flags = append(flags, issues...)
	}

	for _, dim := range model.Dimensions() {
		if s, ok := scores[dim]; ok {
			p.hooks.ScoreGenerated(dim, s.RawScore, s.Confidence, len(s.Sources))
		}
	}

	// Stage 4: deterministic scoring
	prs, rawScores, normalizedScores, evidenceMap := p.aggregator.CalculatePRS(scores)

	// Stage 5: review. Advisory output, but a review that cannot be
	// parsed fails the evaluation.
	p.hooks.AgentStarted(review.AgentName)
	confidence, reviewFlags, reviewUsage, err := p.reviewer.Review(ctx, rawScores, evidenceMap)
	telemetry.Record(review.AgentName, reviewUsage)
	p.hooks.AgentEnded(review.AgentName, reviewUsage.InputTokens, reviewUsage.OutputTokens)
	if err != nil {
		return nil, err
	}
	if len(reviewFlags) > 0 {
		p.hooks.QualityIssues(review.AgentName, reviewFlags)
	}
	flags = append(flags, reviewFlags...)

	// Stage 6: SWOT synthesis
	swotResult, err := p.synthesizer.Synthesize(normalizedScores)
	if err != nil {
		return nil, err
	}

	// Stage 7: assembly
	result := &model.EvaluationResult{
		IdeaID:               in.IdeaID,
		DimensionScores:      rawScores,
		NormalizedScores:     normalizedScores,
		PatentRelevanceScore: prs,
		SWOT:                 *swotResult,
		Confidence:           confidence,
		EvidenceMap:          evidenceMap,
		Flags:                flags,
		Usage:                telemetry.Summary(),
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}
