package pipeline

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"patentscope/internal/llm"
	"patentscope/internal/model"
)

func testPricing() model.PricingConfig {
	return model.PricingConfig{CostPer1KInput: 0.015, CostPer1KOutput: 0.06}
}

func TestTelemetry_Summary(t *testing.T) {
	tel := NewTelemetry(testPricing())

	tel.Record("TriageOrchestrator", llm.Usage{InputTokens: 200, OutputTokens: 100})
	tel.Record("TechnologySignalAgent", llm.Usage{InputTokens: 300, OutputTokens: 100})
	tel.Record("TechnologySignalAgent", llm.Usage{InputTokens: 100, OutputTokens: 0})

	summary := tel.Summary()

	if summary.TotalTokens != 800 {
		t.Errorf("Expected 800 total tokens, got %d", summary.TotalTokens)
	}
	if summary.AgentsExecuted != 2 {
		t.Errorf("Expected 2 distinct agents, got %d", summary.AgentsExecuted)
	}
	// (600*0.015 + 200*0.06) / 1000 = 0.021
	if summary.EstimatedCost != 0.021 {
		t.Errorf("Expected estimated cost 0.021, got %v", summary.EstimatedCost)
	}
	if summary.DurationSeconds < 0 {
		t.Errorf("Expected non-negative duration, got %v", summary.DurationSeconds)
	}
}

func TestTelemetry_ConcurrentRecord(t *testing.T) {
	tel := NewTelemetry(testPricing())

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tel.Record(fmt.Sprintf("agent-%d", i), llm.Usage{InputTokens: 1, OutputTokens: 1})
			}
		}()
	}
	wg.Wait()

	summary := tel.Summary()
	if summary.TotalTokens != 1200 {
		t.Errorf("Expected 1200 total tokens, got %d", summary.TotalTokens)
	}
	if summary.AgentsExecuted != 6 {
		t.Errorf("Expected 6 distinct agents, got %d", summary.AgentsExecuted)
	}
}

func TestTelemetry_EmptySummary(t *testing.T) {
	summary := NewTelemetry(testPricing()).Summary()

	if summary.TotalTokens != 0 || summary.EstimatedCost != 0 || summary.AgentsExecuted != 0 {
		t.Errorf("Expected zeroed summary, got %+v", summary)
	}
}

func TestLogHooks_Output(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(&buf)

	h.AgentStarted("TechnologySignalAgent")
	h.AgentEnded("TechnologySignalAgent", 300, 100)
	h.ScoreGenerated(model.DimTechMomentum, 4.0, 0.8, 2)
	h.ValidationError("MarketSignalAgent", "sources missing")
	h.QualityIssues("ReviewerAgent", []string{"weak evidence", "contradictory scores"})

	out := buf.String()
	for _, want := range []string{
		"[agent start] TechnologySignalAgent",
		"tokens: 300 in / 100 out",
		"tech_momentum: 4.0/5.0",
		"validation error in MarketSignalAgent",
		"quality issue in ReviewerAgent: weak evidence",
		"quality issue in ReviewerAgent: contradictory scores",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLogHooks_ConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.AgentStarted(fmt.Sprintf("agent-%d", i))
			h.AgentEnded(fmt.Sprintf("agent-%d", i), 10, 5)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Errorf("Expected 20 log lines, got %d", len(lines))
	}
}
