package model

import (
	"fmt"
	"strings"
)

// InventionInput is the raw submission to be evaluated
type InventionInput struct {
	IdeaID             string   `json:"idea_id" yaml:"idea_id"`                                 // Unique invention identifier
	Title              string   `json:"title" yaml:"title"`                                     // Invention title (min 5 chars)
	Description        string   `json:"description" yaml:"description"`                         // Detailed description (min 20 chars)
	TechnicalDomain    string   `json:"technical_domain,omitempty" yaml:"technical_domain"`     // Primary technical domain
	ApplicationDomains []string `json:"application_domains,omitempty" yaml:"application_domains"` // Target application domains
}

// Validate checks that the submission is substantive enough to evaluate
func (in *InventionInput) Validate() error {
	if strings.TrimSpace(in.IdeaID) == "" {
		return &ValidationError{Agent: "input", Message: "idea_id is required"}
	}
	if len(strings.TrimSpace(in.Title)) < 5 {
		return &ValidationError{Agent: "input", Message: "title must be at least 5 characters"}
	}
	if len(strings.TrimSpace(in.Description)) < 20 {
		return &ValidationError{Agent: "input", Message: "description must be at least 20 characters"}
	}
	return nil
}

// AnalysisDepth indicates how deeply an invention should be analyzed
type AnalysisDepth string

const (
	DepthTriage AnalysisDepth = "triage"
	DepthFull   AnalysisDepth = "full"
)

// ParseAnalysisDepth normalizes a free-form depth value, defaulting to full
func ParseAnalysisDepth(s string) AnalysisDepth {
	if strings.EqualFold(strings.TrimSpace(s), string(DepthTriage)) {
		return DepthTriage
	}
	return DepthFull
}

// CanonicalRecord is the normalized invention produced by triage.
// It is built once per evaluation and read by every signal agent;
// it is never mutated after creation.
type CanonicalRecord struct {
	IdeaID             string        `json:"idea_id"`
	CoreConcept        string        `json:"core_concept"`
	TechnicalKeywords  []string      `json:"technical_keywords"`
	ApplicationDomains []string      `json:"application_domains"`
	AnalysisDepth      AnalysisDepth `json:"analysis_depth"`
}

// Describe renders the record for inclusion in agent prompts
func (r *CanonicalRecord) Describe() string {
	return fmt.Sprintf("Concept: %s\nKeywords: %s\nDomains: %s",
		r.CoreConcept,
		strings.Join(r.TechnicalKeywords, ", "),
		strings.Join(r.ApplicationDomains, ", "))
}
