package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"patentscope/internal/model"
)

func anthropicSuccessHandler(t *testing.T, text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key test-key, got %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("Expected anthropic-version header")
		}

		resp := anthropicResponse{
			ID:   "msg_123",
			Type: "message",
			Role: "assistant",
			Content: []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			}{
				{Type: "text", Text: text},
			},
			Model:      "claude-3-5-sonnet-20241022",
			StopReason: "end_turn",
		}
		resp.Usage.InputTokens = 40
		resp.Usage.OutputTokens = 15
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestAnthropicProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(anthropicSuccessHandler(t, `{"aggregate_score": 2.0}`))
	defer server.Close()

	config := Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "claude-3-5-sonnet-20241022",
		Timeout: 5,
	}
	provider, err := NewAnthropicProvider(config)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Prompt:    "score this",
		MaxTokens: 300,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Text != `{"aggregate_score": 2.0}` {
		t.Errorf("Unexpected response text: %q", resp.Text)
	}
	if resp.InputTokens != 40 || resp.OutputTokens != 15 {
		t.Errorf("Unexpected token counts: %d in / %d out", resp.InputTokens, resp.OutputTokens)
	}
}

func TestAnthropicProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid api key"}}`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), CompletionRequest{Prompt: "score this"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var svcErr *model.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("Expected *model.ExternalServiceError, got %T", err)
	}
	if !strings.Contains(err.Error(), "authentication_error") {
		t.Errorf("Expected API error details, got %v", err)
	}
}

func TestAnthropicProvider_Complete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := anthropicResponse{
			ID:    "msg_123",
			Type:  "message",
			Role:  "assistant",
			Model: "claude-3-5-sonnet-20241022",
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), CompletionRequest{Prompt: "score this"})
	if err == nil {
		t.Fatal("Expected error for empty content, got nil")
	}

	var svcErr *model.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("Expected *model.ExternalServiceError, got %T", err)
	}
}

func TestAnthropicProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewAnthropicProvider(Config{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
}
