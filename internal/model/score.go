package model

import (
	"fmt"
	"math"
	"strings"
)

// Dimension is one of the six fixed axes of assessment
type Dimension string

const (
	DimTechMomentum        Dimension = "tech_momentum"
	DimMarketGravity       Dimension = "market_gravity"
	DimWhiteSpace          Dimension = "white_space"
	DimStrategicLeverage   Dimension = "strategic_leverage"
	DimTiming              Dimension = "timing"
	DimRegulatoryAlignment Dimension = "regulatory_alignment"
)

// Dimensions lists the fixed dimension set in canonical order
func Dimensions() []Dimension {
	return []Dimension{
		DimTechMomentum,
		DimMarketGravity,
		DimWhiteSpace,
		DimStrategicLeverage,
		DimTiming,
		DimRegulatoryAlignment,
	}
}

// Display formats a dimension name for human-readable output
// (e.g. "tech_momentum" -> "Tech Momentum")
func (d Dimension) Display() string {
	words := strings.Split(string(d), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ScoringWeights maps each dimension to its share of the composite score.
// The weights are a process-wide constant and must sum to exactly 1.0.
var ScoringWeights = map[Dimension]float64{
	DimTechMomentum:        0.20,
	DimMarketGravity:       0.25,
	DimWhiteSpace:          0.20,
	DimStrategicLeverage:   0.15,
	DimTiming:              0.10,
	DimRegulatoryAlignment: 0.10,
}

// CheckWeights verifies the weight invariant at startup
func CheckWeights(weights map[Dimension]float64) error {
	sum := 0.0
	for _, d := range Dimensions() {
		w, ok := weights[d]
		if !ok {
			return &InvariantViolation{Message: fmt.Sprintf("missing weight for dimension %s", d)}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return &InvariantViolation{Message: fmt.Sprintf("scoring weights sum to %v, expected 1.0", sum)}
	}
	return nil
}

// DimensionScore is a single validated dimension measurement.
// Exactly one signal agent (or the guardrail fallback) produces each
// instance; it is immutable once constructed.
type DimensionScore struct {
	RawScore        float64  `json:"raw_score"`        // 0-5
	NormalizedScore float64  `json:"normalized_score"` // raw/5*100
	Sources         []string `json:"sources"`          // At least one non-empty source
	Agent           string   `json:"agent"`            // Producing agent name
	Notes           string   `json:"notes"`            // Rationale (min 5 chars)
	Confidence      float64  `json:"confidence"`       // 0-1, default 0.5
}

// Normalize maps a raw 0-5 score onto the 0-100 scale
func Normalize(raw float64) float64 {
	return raw / 5 * 100
}

// Evidence is the per-dimension provenance record carried in the
// evidence map: who scored it, from which sources, and why.
type Evidence struct {
	Sources []string `json:"sources"`
	Agent   string   `json:"agent"`
	Notes   string   `json:"notes"`
}

// EvidenceMap records supporting evidence for every dimension
type EvidenceMap map[Dimension]Evidence

// ConfidenceLevel is the reviewer's qualitative confidence label
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ParseConfidenceLevel normalizes a free-form label, defaulting to medium
func ParseConfidenceLevel(s string) ConfidenceLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return ConfidenceLow
	case "high":
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}
