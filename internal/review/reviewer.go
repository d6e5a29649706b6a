// Package review implements the quality reviewer. Its output is
// strictly advisory metadata: a confidence label and quality flags.
// It never alters a score.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"patentscope/internal/llm"
	"patentscope/internal/model"
)

// AgentName identifies the reviewer in telemetry and errors
const AgentName = "ReviewerAgent"

// Reviewer assigns a qualitative confidence level and emits quality
// flags from the aggregated evidence.
type Reviewer struct {
	provider llm.Provider
	model    string
}

// NewReviewer creates a new reviewer
func NewReviewer(provider llm.Provider, modelName string) *Reviewer {
	return &Reviewer{provider: provider, model: modelName}
}

// reviewResponse is the structured payload expected from the model
type reviewResponse struct {
	Confidence string   `json:"confidence"`
	Flags      []string `json:"flags"`
}

// Review inspects the scores and evidence, returning a confidence
// label and a list of quality flags. Parse failures propagate: a
// review that cannot be trusted fails the evaluation rather than
// silently passing a default.
func (r *Reviewer) Review(ctx context.Context, rawScores map[model.Dimension]float64, evidence model.EvidenceMap) (model.ConfidenceLevel, []string, llm.Usage, error) {
	resp, err := r.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:    buildPrompt(rawScores, evidence),
		Model:     r.model,
		MaxTokens: 500,
	})
	if err != nil {
		return "", nil, llm.Usage{}, fmt.Errorf("review: %w", err)
	}

	payload := llm.ExtractJSONPayload(resp.Text)

	var parsed reviewResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return "", nil, resp.Usage(), &model.MalformedResponseError{Agent: AgentName, Err: err}
	}

	return model.ParseConfidenceLevel(parsed.Confidence), parsed.Flags, resp.Usage(), nil
}

func buildPrompt(rawScores map[model.Dimension]float64, evidence model.EvidenceMap) string {
	var b strings.Builder

	b.WriteString("Review this patent relevance assessment for quality issues.\n\nRaw Scores:\n")
	for _, dim := range sortedDimensions(rawScores) {
		fmt.Fprintf(&b, "  %s: %.1f\n", dim, rawScores[dim])
	}

	b.WriteString("\nEvidence Map:\n")
	for _, dim := range sortedEvidence(evidence) {
		ev := evidence[dim]
		fmt.Fprintf(&b, "%s:\n", dim)
		fmt.Fprintf(&b, "  Sources: %s\n", strings.Join(ev.Sources, ", "))
		fmt.Fprintf(&b, "  Agent: %s\n", ev.Agent)
		fmt.Fprintf(&b, "  Notes: %s\n", ev.Notes)
	}

	b.WriteString(`
Tasks:
1. Flag weak evidence (vague sources, insufficient reasoning)
2. Flag inconsistencies (contradictory scores)
3. Flag over-confidence (high scores with weak evidence)
4. Assign confidence level: "low", "medium", or "high"

Return ONLY valid JSON (no markdown):
{
    "confidence": "low" or "medium" or "high",
    "flags": ["flag1", "flag2", ...]
}

Be objective. Do NOT change scores.`)

	return b.String()
}

func sortedDimensions(m map[model.Dimension]float64) []model.Dimension {
	dims := make([]model.Dimension, 0, len(m))
	for d := range m {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}

func sortedEvidence(m model.EvidenceMap) []model.Dimension {
	dims := make([]model.Dimension, 0, len(m))
	for d := range m {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}
