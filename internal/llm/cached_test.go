package llm

import (
	"context"
	"testing"
	"time"

	"patentscope/internal/cache"
)

// countingProvider records how many completions it served
type countingProvider struct {
	calls int
	text  string
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	p.calls++
	return &CompletionResponse{
		Text:         p.text,
		Model:        req.Model,
		InputTokens:  10,
		OutputTokens: 5,
	}, nil
}

func (p *countingProvider) IsAvailable(ctx context.Context) bool { return true }

func TestCachedProvider_MemoizesIdenticalRequests(t *testing.T) {
	inner := &countingProvider{text: "cached answer"}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	p := NewCachedProvider(inner, store, time.Minute)

	req := CompletionRequest{Prompt: "same prompt", Model: "test-model"}

	first, err := p.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	second, err := p.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", inner.calls)
	}
	if first.Text != second.Text || second.Text != "cached answer" {
		t.Errorf("Expected identical cached responses, got %q and %q", first.Text, second.Text)
	}
	if second.InputTokens != 10 || second.OutputTokens != 5 {
		t.Errorf("Expected token counts preserved in cache, got %d/%d", second.InputTokens, second.OutputTokens)
	}
}

func TestCachedProvider_DistinguishesPromptAndModel(t *testing.T) {
	inner := &countingProvider{text: "answer"}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	p := NewCachedProvider(inner, store, time.Minute)

	ctx := context.Background()
	requests := []CompletionRequest{
		{Prompt: "prompt a", Model: "model-1"},
		{Prompt: "prompt b", Model: "model-1"},
		{Prompt: "prompt a", Model: "model-2"},
		{Prompt: "prompt a", System: "you are terse", Model: "model-1"},
	}
	for _, req := range requests {
		if _, err := p.Complete(ctx, req); err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
	}

	if inner.calls != len(requests) {
		t.Errorf("Expected %d distinct provider calls, got %d", len(requests), inner.calls)
	}
}

func TestCachedProvider_DropsCorruptEntries(t *testing.T) {
	inner := &countingProvider{text: "fresh answer"}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	p := NewCachedProvider(inner, store, time.Minute)

	req := CompletionRequest{Prompt: "prompt", Model: "test-model"}
	key := cache.Key(req.Model, req.System+"\x00"+req.Prompt)
	if err := store.Set(key, []byte("{corrupt"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	resp, err := p.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != "fresh answer" {
		t.Errorf("Expected fresh completion after corrupt entry, got %q", resp.Text)
	}
	if inner.calls != 1 {
		t.Errorf("Expected provider to be called once, got %d", inner.calls)
	}

	// The corrupt entry was replaced with the fresh completion
	if _, err := p.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("Expected second call served from cache, got %d provider calls", inner.calls)
	}
}
