package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"patentscope/internal/llm"
	"patentscope/internal/model"
)

type stubProvider struct {
	text       string
	err        error
	lastPrompt string
	maxTokens  int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.lastPrompt = req.Prompt
	s.maxTokens = req.MaxTokens
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Text: s.text, Model: req.Model, InputTokens: 150, OutputTokens: 40}, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func testScores() map[model.Dimension]float64 {
	return map[model.Dimension]float64{
		model.DimTechMomentum:  4.0,
		model.DimMarketGravity: 1.5,
	}
}

func testEvidence() model.EvidenceMap {
	return model.EvidenceMap{
		model.DimTechMomentum: {
			Sources: []string{"github trends"},
			Agent:   "TechnologySignalAgent",
			Notes:   "strong adoption",
		},
		model.DimMarketGravity: {
			Sources: []string{"market reports"},
			Agent:   "MarketSignalAgent",
			Notes:   "small addressable market",
		},
	}
}

func TestReview_Success(t *testing.T) {
	provider := &stubProvider{
		text: `{"confidence": "medium", "flags": ["weak evidence for market_gravity"]}`,
	}
	r := NewReviewer(provider, "test-model")

	confidence, flags, usage, err := r.Review(context.Background(), testScores(), testEvidence())
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	if confidence != model.ConfidenceMedium {
		t.Errorf("Expected medium confidence, got %s", confidence)
	}
	if len(flags) != 1 || !strings.Contains(flags[0], "market_gravity") {
		t.Errorf("Unexpected flags: %v", flags)
	}
	if usage.InputTokens != 150 {
		t.Errorf("Unexpected usage: %+v", usage)
	}
	// The reviewer carries a fixed 500-token response budget
	if provider.maxTokens != 500 {
		t.Errorf("Expected request max tokens 500, got %d", provider.maxTokens)
	}

	// The prompt carries scores and evidence for every dimension
	for _, want := range []string{"tech_momentum: 4.0", "market_gravity: 1.5", "github trends", "small addressable market"} {
		if !strings.Contains(provider.lastPrompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestReview_DeterministicPrompt(t *testing.T) {
	provider := &stubProvider{text: `{"confidence": "high", "flags": []}`}
	r := NewReviewer(provider, "test-model")

	if _, _, _, err := r.Review(context.Background(), testScores(), testEvidence()); err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	first := provider.lastPrompt

	if _, _, _, err := r.Review(context.Background(), testScores(), testEvidence()); err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if provider.lastPrompt != first {
		t.Error("Expected identical prompts across calls with identical input")
	}
}

func TestReview_MalformedResponseFails(t *testing.T) {
	provider := &stubProvider{text: `no structure here`}
	r := NewReviewer(provider, "test-model")

	_, _, _, err := r.Review(context.Background(), testScores(), testEvidence())
	if err == nil {
		t.Fatal("Expected error for unparseable review")
	}

	var mErr *model.MalformedResponseError
	if !errors.As(err, &mErr) {
		t.Fatalf("Expected *model.MalformedResponseError, got %T", err)
	}
	if mErr.Agent != AgentName {
		t.Errorf("Expected agent %s, got %s", AgentName, mErr.Agent)
	}
}

func TestReview_TransportError(t *testing.T) {
	provider := &stubProvider{
		err: &model.ExternalServiceError{Provider: "openai", Err: errors.New("rate limited")},
	}
	r := NewReviewer(provider, "test-model")

	_, _, _, err := r.Review(context.Background(), testScores(), testEvidence())
	if err == nil {
		t.Fatal("Expected transport error to propagate")
	}

	var svcErr *model.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("Expected wrapped *model.ExternalServiceError, got %T", err)
	}
}

func TestReview_UnknownConfidenceDefaultsToMedium(t *testing.T) {
	provider := &stubProvider{text: `{"confidence": "very sure", "flags": []}`}
	r := NewReviewer(provider, "test-model")

	confidence, _, _, err := r.Review(context.Background(), testScores(), testEvidence())
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if confidence != model.ConfidenceMedium {
		t.Errorf("Expected unknown label to default to medium, got %s", confidence)
	}
}
