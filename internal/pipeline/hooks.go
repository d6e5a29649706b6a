package pipeline

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"patentscope/internal/llm"
	"patentscope/internal/model"
)

// Hooks receives lifecycle events from a pipeline run. Events are
// pure notifications: implementations must not block and cannot alter
// pipeline control flow. Hooks may be invoked from concurrent agent
// goroutines and must be safe for concurrent use.
type Hooks interface {
	AgentStarted(name string)
	AgentEnded(name string, tokensIn, tokensOut int)
	ScoreGenerated(dim model.Dimension, raw float64, confidence float64, sourceCount int)
	ValidationError(agent, message string)
	QualityIssues(agent string, issues []string)
}

// NopHooks discards all events
type NopHooks struct{}

func (NopHooks) AgentStarted(string)                                   {}
func (NopHooks) AgentEnded(string, int, int)                           {}
func (NopHooks) ScoreGenerated(model.Dimension, float64, float64, int) {}
func (NopHooks) ValidationError(string, string)                        {}
func (NopHooks) QualityIssues(string, []string)                        {}

// LogHooks prints events to a writer, serialized behind a mutex so
// concurrent agents do not interleave lines.
type LogHooks struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogHooks creates hooks that log to the given writer
func NewLogHooks(w io.Writer) *LogHooks {
	return &LogHooks{w: w}
}

func (h *LogHooks) AgentStarted(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.w, "  [agent start] %s\n", name)
}

func (h *LogHooks) AgentEnded(name string, tokensIn, tokensOut int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.w, "  [agent end] %s | tokens: %d in / %d out\n", name, tokensIn, tokensOut)
}

func (h *LogHooks) ScoreGenerated(dim model.Dimension, raw float64, confidence float64, sourceCount int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.w, "    - %s: %.1f/5.0 (confidence: %.2f, sources: %d)\n", dim, raw, confidence, sourceCount)
}

func (h *LogHooks) ValidationError(agent, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.w, "    ! validation error in %s: %s\n", agent, message)
}

func (h *LogHooks) QualityIssues(agent string, issues []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, issue := range issues {
		fmt.Fprintf(h.w, "    ! quality issue in %s: %s\n", agent, issue)
	}
}

// Telemetry accumulates per-agent token usage across concurrent
// tasks. All methods are safe for concurrent use; the orchestrator's
// parallel stage records into it from every agent goroutine.
type Telemetry struct {
	mu      sync.Mutex
	start   time.Time
	agents  map[string]llm.Usage
	pricing model.PricingConfig
}

// NewTelemetry creates an accumulator with the clock started
func NewTelemetry(pricing model.PricingConfig) *Telemetry {
	return &Telemetry{
		start:   time.Now(),
		agents:  make(map[string]llm.Usage),
		pricing: pricing,
	}
}

// Record adds one agent call's token usage
func (t *Telemetry) Record(agent string, u llm.Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.agents[agent]
	cur.InputTokens += u.InputTokens
	cur.OutputTokens += u.OutputTokens
	t.agents[agent] = cur
}

// Summary builds the usage summary for the final result
func (t *Telemetry) Summary() model.UsageSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	totalIn, totalOut := 0, 0
	for _, u := range t.agents {
		totalIn += u.InputTokens
		totalOut += u.OutputTokens
	}

	cost := (float64(totalIn)*t.pricing.CostPer1KInput + float64(totalOut)*t.pricing.CostPer1KOutput) / 1000

	return model.UsageSummary{
		TotalTokens:     totalIn + totalOut,
		EstimatedCost:   roundTo(cost, 4),
		DurationSeconds: roundTo(time.Since(t.start).Seconds(), 2),
		AgentsExecuted:  len(t.agents),
	}
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
