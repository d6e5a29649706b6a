package swot

import (
	"errors"
	"strings"
	"testing"

	"patentscope/internal/model"
)

func TestSynthesize_MixedScores(t *testing.T) {
	s := NewSynthesizer()

	normalized := map[model.Dimension]float64{
		model.DimTechMomentum:        80,
		model.DimMarketGravity:       30,
		model.DimWhiteSpace:          20,
		model.DimStrategicLeverage:   50,
		model.DimTiming:              70,
		model.DimRegulatoryAlignment: 35,
	}

	result, err := s.Synthesize(normalized)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	// tech_momentum (80) and timing (70) are strengths
	if len(result.Strengths) != 2 {
		t.Errorf("Expected 2 strengths, got %v", result.Strengths)
	}
	if !containsSubstring(result.Strengths, "Tech Momentum") {
		t.Errorf("Expected Tech Momentum strength, got %v", result.Strengths)
	}
	if !containsSubstring(result.Strengths, "Timing") {
		t.Errorf("Expected Timing strength, got %v", result.Strengths)
	}

	// market_gravity (30), white_space (20), regulatory_alignment (35) are weaknesses
	if len(result.Weaknesses) != 3 {
		t.Errorf("Expected 3 weaknesses, got %v", result.Weaknesses)
	}
	if !containsSubstring(result.Weaknesses, "White Space") {
		t.Errorf("Expected White Space weakness, got %v", result.Weaknesses)
	}

	// timing (70 >= 65) triggers an opportunity; market_gravity (30) does not
	if len(result.Opportunities) != 1 || !strings.Contains(result.Opportunities[0], "Favorable timing") {
		t.Errorf("Expected only favorable-timing opportunity, got %v", result.Opportunities)
	}

	// regulatory_alignment (35) and white_space (20) both trigger threats
	if len(result.Threats) != 2 {
		t.Errorf("Expected 2 threats, got %v", result.Threats)
	}
	if !containsSubstring(result.Threats, "Regulatory friction") {
		t.Errorf("Expected regulatory friction threat, got %v", result.Threats)
	}
	if !containsSubstring(result.Threats, "Crowded market") {
		t.Errorf("Expected crowded market threat, got %v", result.Threats)
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	s := NewSynthesizer()

	normalized := map[model.Dimension]float64{
		model.DimTechMomentum:  90,
		model.DimMarketGravity: 68,
		model.DimTiming:        66,
	}

	first, err := s.Synthesize(normalized)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	second, err := s.Synthesize(normalized)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if strings.Join(first.Strengths, "|") != strings.Join(second.Strengths, "|") {
		t.Error("Strengths not deterministic")
	}
	if strings.Join(first.Opportunities, "|") != strings.Join(second.Opportunities, "|") {
		t.Error("Opportunities not deterministic")
	}
}

func TestSynthesize_BothOpportunities(t *testing.T) {
	s := NewSynthesizer()

	normalized := map[model.Dimension]float64{
		model.DimMarketGravity: 65,
		model.DimTiming:        65,
	}

	result, err := s.Synthesize(normalized)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	// The two opportunity checks are independent, not mutually exclusive
	if len(result.Opportunities) != 2 {
		t.Errorf("Expected 2 opportunities, got %v", result.Opportunities)
	}
}

func TestSynthesize_MissingDimensionNeverThreatens(t *testing.T) {
	s := NewSynthesizer()

	// regulatory_alignment and white_space absent: no threats triggered
	normalized := map[model.Dimension]float64{
		model.DimTechMomentum: 75,
	}

	result, err := s.Synthesize(normalized)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if len(result.Threats) != 0 {
		t.Errorf("Expected no threats for absent dimensions, got %v", result.Threats)
	}
}

func TestSynthesize_MidrangeScoresViolateInvariant(t *testing.T) {
	s := NewSynthesizer()

	// Every dimension in the dead zone (41-64): nothing triggers,
	// which violates the non-empty SWOT invariant.
	normalized := map[model.Dimension]float64{
		model.DimTechMomentum:        50,
		model.DimMarketGravity:       55,
		model.DimWhiteSpace:          60,
		model.DimStrategicLeverage:   45,
		model.DimTiming:              50,
		model.DimRegulatoryAlignment: 55,
	}

	_, err := s.Synthesize(normalized)
	if err == nil {
		t.Fatal("Expected invariant violation for all-empty SWOT")
	}

	var inv *model.InvariantViolation
	if !errors.As(err, &inv) {
		t.Errorf("Expected *model.InvariantViolation, got %T", err)
	}
}

func containsSubstring(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
