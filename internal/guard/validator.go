// Package guard validates signal agent outputs before any downstream
// stage is allowed to trust them.
package guard

import (
	"encoding/json"
	"fmt"
	"strings"

	"patentscope/internal/model"
)

// DefaultMinConfidence is the floor applied when callers pass no
// explicit minimum.
const DefaultMinConfidence = 0.3

// rawSignal is the structured payload expected from a signal agent
type rawSignal struct {
	AggregateScore *float64 `json:"aggregate_score"`
	Sources        []string `json:"sources"`
	Notes          string   `json:"notes"`
	Confidence     *float64 `json:"confidence"`
}

// ValidateScore parses and validates a dimension score payload.
// It returns a ValidationError when the JSON is unparseable, the
// score is missing or outside [0-5], the sources are empty, the notes
// are under 5 characters, or a reported confidence falls below
// minConfidence. On success the returned DimensionScore carries
// normalized_score = raw/5*100.
func ValidateScore(raw []byte, agentName string, minConfidence float64) (*model.DimensionScore, error) {
	var parsed rawSignal
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &model.ValidationError{Agent: agentName, Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if parsed.AggregateScore == nil {
		return nil, &model.ValidationError{Agent: agentName, Message: "aggregate_score missing or non-numeric"}
	}
	score := *parsed.AggregateScore
	if score < 0 || score > 5 {
		return nil, &model.ValidationError{Agent: agentName, Message: fmt.Sprintf("score %v out of range [0-5]", score)}
	}

	var sources []string
	for _, s := range parsed.Sources {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sources = append(sources, trimmed)
		}
	}
	if len(sources) == 0 {
		return nil, &model.ValidationError{Agent: agentName, Message: "no sources provided"}
	}

	notes := strings.TrimSpace(parsed.Notes)
	if len(notes) < 5 {
		return nil, &model.ValidationError{Agent: agentName, Message: "notes too brief or missing (min 5 chars)"}
	}

	confidence := 0.5
	if parsed.Confidence != nil {
		confidence = *parsed.Confidence
		if confidence < minConfidence {
			return nil, &model.ValidationError{
				Agent:   agentName,
				Message: fmt.Sprintf("confidence %.2f below minimum %.2f", confidence, minConfidence),
			}
		}
	}

	return &model.DimensionScore{
		RawScore:        score,
		NormalizedScore: model.Normalize(score),
		Sources:         sources,
		Agent:           agentName,
		Notes:           notes,
		Confidence:      confidence,
	}, nil
}

// ValidateBatch checks a collection of dimension scores as a whole.
// Issues are advisory: the pipeline surfaces them as quality flags
// and continues.
func ValidateBatch(scores []*model.DimensionScore, requiredCount int) (bool, []string) {
	var issues []string

	if len(scores) < requiredCount {
		issues = append(issues, fmt.Sprintf("only %d dimensions provided, expected %d", len(scores), requiredCount))
	}

	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s.Confidence
		}
		avg := sum / float64(len(scores))
		if avg < 0.3 {
			issues = append(issues, fmt.Sprintf("average confidence %.2f is very low (< 0.3)", avg))
		}
	}

	// Over-confidence heuristic: near-perfect scores backed by shaky
	// confidence deserve a second look.
	for _, s := range scores {
		if s.NormalizedScore > 95 && s.Confidence < 0.6 {
			issues = append(issues, fmt.Sprintf("%s: high score %.1f with low confidence %.2f", s.Agent, s.NormalizedScore, s.Confidence))
		}
	}

	return len(issues) == 0, issues
}
