// Package score computes the composite patent relevance score.
// It is the single point of numeric truth for the final figure:
// pure, deterministic, and bit-for-bit reproducible for a given set
// of dimension scores.
package score

import (
	"patentscope/internal/model"
)

// Aggregator combines six validated dimension scores into one
// weighted composite plus an evidence map. No external calls, no
// randomness, no hidden state.
type Aggregator struct {
	weights map[model.Dimension]float64
}

// NewAggregator creates an aggregator with the fixed scoring weights.
// The weight invariant (sum exactly 1.0) is enforced at construction.
func NewAggregator() (*Aggregator, error) {
	if err := model.CheckWeights(model.ScoringWeights); err != nil {
		return nil, err
	}
	return &Aggregator{weights: model.ScoringWeights}, nil
}

// CalculatePRS computes the weighted composite score.
//
// Returns the PRS in [0-100], the raw score map, the normalized score
// map, and the per-dimension evidence map. With weights summing to
// 1.0 and each raw score in [0-5], the composite cannot leave
// [0-100].
func (a *Aggregator) CalculatePRS(scores map[model.Dimension]*model.DimensionScore) (float64, map[model.Dimension]float64, map[model.Dimension]float64, model.EvidenceMap) {
	raw := make(map[model.Dimension]float64, len(scores))
	normalized := make(map[model.Dimension]float64, len(scores))
	evidence := make(model.EvidenceMap, len(scores))

	for dim, s := range scores {
		raw[dim] = s.RawScore
		normalized[dim] = model.Normalize(s.RawScore)
		evidence[dim] = model.Evidence{
			Sources: s.Sources,
			Agent:   s.Agent,
			Notes:   s.Notes,
		}
	}

	// Iterate in canonical dimension order so the float sum is
	// identical across runs.
	prs := 0.0
	for _, dim := range model.Dimensions() {
		prs += normalized[dim] * a.weights[dim]
	}

	return prs, raw, normalized, evidence
}
