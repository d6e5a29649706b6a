package model

// SWOT holds the rule-based qualitative synthesis. A well-formed
// record has at least one non-empty category.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// IsEmpty reports whether all four categories are empty
func (s *SWOT) IsEmpty() bool {
	return len(s.Strengths) == 0 && len(s.Weaknesses) == 0 &&
		len(s.Opportunities) == 0 && len(s.Threats) == 0
}

// UsageSummary aggregates per-evaluation telemetry
type UsageSummary struct {
	TotalTokens     int     `json:"total_tokens"`
	EstimatedCost   float64 `json:"estimated_cost"`
	DurationSeconds float64 `json:"duration_seconds"`
	AgentsExecuted  int     `json:"agents_executed"`
}

// EvaluationResult is the terminal artifact of a pipeline run.
// It is assembled once by the orchestrator and never mutated.
type EvaluationResult struct {
	IdeaID               string                `json:"idea_id"`
	DimensionScores      map[Dimension]float64 `json:"dimension_scores"`
	NormalizedScores     map[Dimension]float64 `json:"normalized_scores"`
	PatentRelevanceScore float64               `json:"patent_relevance_score"`
	SWOT                 SWOT                  `json:"swot"`
	Confidence           ConfidenceLevel       `json:"confidence"`
	EvidenceMap          EvidenceMap           `json:"evidence_map"`
	Flags                []string              `json:"flags"`
	Usage                UsageSummary          `json:"usage_summary"`
}

// Validate enforces the terminal invariants on an assembled result
func (r *EvaluationResult) Validate() error {
	if r.PatentRelevanceScore < 0 || r.PatentRelevanceScore > 100 {
		return &InvariantViolation{Message: "patent relevance score out of range [0-100]"}
	}
	if r.SWOT.IsEmpty() {
		return &InvariantViolation{Message: "SWOT has no content in any category"}
	}
	return nil
}
