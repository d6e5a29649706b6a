// Package triage normalizes a raw invention submission into the
// canonical record consumed by every signal agent.
package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"patentscope/internal/llm"
	"patentscope/internal/model"
)

// AgentName identifies the normalizer in telemetry and errors
const AgentName = "TriageOrchestrator"

// Normalizer turns free-text input into a canonical structured record.
// It sits on the pipeline's critical path: a failure here is fatal to
// the whole evaluation because every downstream agent depends on it.
type Normalizer struct {
	provider llm.Provider
	model    string
}

// NewNormalizer creates a new normalizer
func NewNormalizer(provider llm.Provider, modelName string) *Normalizer {
	return &Normalizer{provider: provider, model: modelName}
}

// triageResponse is the structured payload expected from the model
type triageResponse struct {
	CoreConcept        string   `json:"core_concept"`
	TechnicalKeywords  []string `json:"technical_keywords"`
	ApplicationDomains []string `json:"application_domains"`
	AnalysisDepth      string   `json:"analysis_depth"`
}

// Triage normalizes the invention into a canonical record
func (n *Normalizer) Triage(ctx context.Context, in *model.InventionInput) (*model.CanonicalRecord, llm.Usage, error) {
	resp, err := n.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      buildPrompt(in),
		Model:       n.model,
		MaxTokens:   500,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, llm.Usage{}, fmt.Errorf("triage: %w", err)
	}

	payload := llm.ExtractJSONPayload(resp.Text)

	var parsed triageResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, resp.Usage(), &model.MalformedResponseError{Agent: AgentName, Err: err}
	}
	if parsed.CoreConcept == "" {
		return nil, resp.Usage(), &model.MalformedResponseError{Agent: AgentName, Err: fmt.Errorf("missing core_concept")}
	}

	return &model.CanonicalRecord{
		IdeaID:             in.IdeaID,
		CoreConcept:        parsed.CoreConcept,
		TechnicalKeywords:  parsed.TechnicalKeywords,
		ApplicationDomains: parsed.ApplicationDomains,
		AnalysisDepth:      model.ParseAnalysisDepth(parsed.AnalysisDepth),
	}, resp.Usage(), nil
}

func buildPrompt(in *model.InventionInput) string {
	return fmt.Sprintf(`You are a semantic extraction specialist.

Invention ID: %s
Title: %s
Description: %s
Technical Domain: %s
Application Domains: %s

Extract and return ONLY valid JSON (no markdown, no explanations):
{
    "core_concept": "1-2 sentence summary of the core idea",
    "technical_keywords": ["keyword1", "keyword2", ...],
    "application_domains": ["domain1", "domain2", ...],
    "analysis_depth": "triage or full"
}`, in.IdeaID, in.Title, in.Description, in.TechnicalDomain, strings.Join(in.ApplicationDomains, ", "))
}
