// Package swot maps normalized dimension scores onto categorized
// qualitative statements. Pure rule engine: no service calls, fully
// deterministic.
package swot

import (
	"fmt"

	"patentscope/internal/model"
)

// Thresholds for the rule engine
const (
	strengthFloor    = 70 // dimension >= 70 is a strength
	weaknessCeiling  = 40 // dimension <= 40 is a weakness
	opportunityFloor = 65 // market_gravity/timing >= 65 is an opportunity
	threatCeiling    = 40 // regulatory_alignment/white_space <= 40 is a threat
)

// Synthesizer generates SWOT records from normalized scores
type Synthesizer struct{}

// NewSynthesizer creates a new synthesizer
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize applies the threshold rules:
//   - Strength for every dimension >= 70
//   - Weakness for every dimension <= 40
//   - Opportunity if market_gravity >= 65 and/or timing >= 65
//   - Threat if regulatory_alignment <= 40 and/or white_space <= 40
//
// A dimension absent from the map never triggers a threat (treated as
// 100) and never triggers an opportunity (treated as 0).
func (s *Synthesizer) Synthesize(normalized map[model.Dimension]float64) (*model.SWOT, error) {
	out := &model.SWOT{}

	for _, dim := range model.Dimensions() {
		score, ok := normalized[dim]
		if !ok {
			continue
		}
		if score >= strengthFloor {
			out.Strengths = append(out.Strengths, fmt.Sprintf("%s: %.1f/100", dim.Display(), score))
		}
		if score <= weaknessCeiling {
			out.Weaknesses = append(out.Weaknesses, fmt.Sprintf("%s: %.1f/100", dim.Display(), score))
		}
	}

	if v, ok := normalized[model.DimMarketGravity]; ok && v >= opportunityFloor {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf("Strong market potential (%.1f/100)", v))
	}
	if v, ok := normalized[model.DimTiming]; ok && v >= opportunityFloor {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf("Favorable timing (%.1f/100)", v))
	}

	if v, ok := normalized[model.DimRegulatoryAlignment]; ok && v <= threatCeiling {
		out.Threats = append(out.Threats, fmt.Sprintf("Regulatory friction (%.1f/100)", v))
	}
	if v, ok := normalized[model.DimWhiteSpace]; ok && v <= threatCeiling {
		out.Threats = append(out.Threats, fmt.Sprintf("Crowded market (%.1f/100)", v))
	}

	if out.IsEmpty() {
		return nil, &model.InvariantViolation{Message: "SWOT has no content in any category"}
	}

	return out, nil
}
