package signal

import (
	"fmt"

	"patentscope/internal/model"
)

// Specs returns the six evidence agent configurations for the given
// guardrail scope. GuardrailAll validates every agent's output;
// GuardrailLegacy restores the historical policy where only the
// tech_momentum and market_gravity agents were guardrailed.
func Specs(scope model.GuardrailScope) []Spec {
	legacy := scope == model.GuardrailLegacy

	return []Spec{
		{
			Dimension:      model.DimTechMomentum,
			Name:           "TechnologySignalAgent",
			Prompt:         techMomentumPrompt,
			WantConfidence: true,
			Guardrail:      true,
		},
		{
			Dimension:      model.DimMarketGravity,
			Name:           "MarketSignalAgent",
			Prompt:         marketGravityPrompt,
			WantConfidence: true,
			Guardrail:      true,
		},
		{
			Dimension: model.DimWhiteSpace,
			Name:      "ProductLandscapeAgent",
			Prompt:    whiteSpacePrompt,
			Guardrail: !legacy,
		},
		{
			Dimension: model.DimStrategicLeverage,
			Name:      "StrategicLeverageAgent",
			Prompt:    strategicLeveragePrompt,
			Guardrail: !legacy,
		},
		{
			Dimension: model.DimTiming,
			Name:      "TimingAgent",
			Prompt:    timingPrompt,
			Guardrail: !legacy,
		},
		{
			Dimension: model.DimRegulatoryAlignment,
			Name:      "RegulatorySignalAgent",
			Prompt:    regulatoryPrompt,
			Guardrail: !legacy,
		},
	}
}

const jsonShapeWithConfidence = `Return ONLY valid JSON (no markdown):
{
    "aggregate_score": <0-5 number>,
    "sources": ["source1", "source2", "source3"],
    "notes": "brief explanation (min 10 chars)",
    "confidence": <0-1 float>
}`

const jsonShape = `Return ONLY valid JSON (no markdown):
{
    "aggregate_score": <0-5 number>,
    "sources": ["source1", "source2"],
    "notes": "brief explanation"
}`

func techMomentumPrompt(rec *model.CanonicalRecord) string {
	return fmt.Sprintf(`Assess technology momentum for:
%s

Based on general knowledge of public trends (Google Trends, GitHub, research velocity),
estimate a score 0-5 for technology momentum. Include your confidence level [0-1].

%s`, rec.Describe(), jsonShapeWithConfidence)
}

func marketGravityPrompt(rec *model.CanonicalRecord) string {
	return fmt.Sprintf(`Assess market gravity for:
%s

Consider market size, growth trends, and capital exposure (from public knowledge).
Estimate a score 0-5 for market gravity. Include your confidence level [0-1].

%s`, rec.Describe(), jsonShapeWithConfidence)
}

func whiteSpacePrompt(rec *model.CanonicalRecord) string {
	return fmt.Sprintf(`Assess product landscape and white space for:
%s

Estimate the white space (lack of competition). Score 0-5 where high = more white space.
Include commercial and open-source competitors.

%s`, rec.Describe(), jsonShape)
}

func strategicLeveragePrompt(rec *model.CanonicalRecord) string {
	return fmt.Sprintf(`Assess strategic leverage for:
%s

Consider abstraction layer, reusability, and lock-in potential.
High score = more strategic value. Score 0-5.

%s`, rec.Describe(), jsonShape)
}

func timingPrompt(rec *model.CanonicalRecord) string {
	return fmt.Sprintf(`Assess market timing for:
%s

Consider technology maturity, market readiness, and competitive timing.
High score = optimal timing. Score 0-5.

%s`, rec.Describe(), jsonShape)
}

func regulatoryPrompt(rec *model.CanonicalRecord) string {
	return fmt.Sprintf(`Assess regulatory alignment for:
%s

Consider regulatory friction, incentives, and geographic complexity.
High score = favorable regulatory environment. Score 0-5.

%s`, rec.Describe(), jsonShape)
}
