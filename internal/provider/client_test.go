package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elsanchez/niche-finder/internal/domain"
)

func TestGeminiClient_Complete(t *testing.T) {
	var gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "models/gemini-2.5-pro:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": `{"ok":true}`}}}},
			},
		})
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "gemini-2.5-pro")
	history := []domain.ChatMessage{{Role: domain.RoleUser, Text: "remember this"}}

	out, err := c.Complete(context.Background(), "secret-key", CompletionRequest{
		History: history, Prompt: "analyze", JSONMode: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"ok":true}` {
		t.Errorf("output = %q", out)
	}
	if gotKey != "secret-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if len(gotBody.Contents) != 2 {
		t.Fatalf("contents = %d, want history + prompt", len(gotBody.Contents))
	}
	if gotBody.GenerationConfig == nil || gotBody.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Error("JSON mode should request application/json responses")
	}
}

func TestGeminiClient_CompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
		})
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "gemini-2.5-flash")
	_, err := c.Complete(context.Background(), "bad", CompletionRequest{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("error = %v, want vendor message surfaced", err)
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	var gotAuth string
	var gotBody openAIRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hello"}},
			},
		})
	}))
	defer server.Close()

	c := NewOpenAIClient(server.URL, "gpt-4o")
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Text: "hi"},
		{Role: domain.RoleModel, Text: "hey"},
	}

	out, err := c.Complete(context.Background(), "sk-test", CompletionRequest{History: history, Prompt: "again"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello" {
		t.Errorf("output = %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if len(gotBody.Messages) != 3 {
		t.Fatalf("messages = %d, want 3", len(gotBody.Messages))
	}
	if gotBody.Messages[1].Role != "assistant" {
		t.Errorf("model role should map to assistant, got %q", gotBody.Messages[1].Role)
	}
}

func TestClientValidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Header.Get("x-goog-api-key") == "good", r.Header.Get("Authorization") == "Bearer good":
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	gemini := NewGeminiClient(server.URL, "gemini-2.5-pro")
	openai := NewOpenAIClient(server.URL, "gpt-4o")
	ctx := context.Background()

	if !gemini.Validate(ctx, "good") {
		t.Error("gemini: good key should validate")
	}
	if gemini.Validate(ctx, "bad") {
		t.Error("gemini: bad key should not validate")
	}
	if !openai.Validate(ctx, "good") {
		t.Error("openai: good key should validate")
	}
	if openai.Validate(ctx, "bad") {
		t.Error("openai: bad key should not validate")
	}
}

func TestClientValidate_NetworkErrorFailsClosed(t *testing.T) {
	// Closed server: probes must report false, never panic or error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	if NewGeminiClient(server.URL, "gemini-2.5-pro").Validate(context.Background(), "k") {
		t.Error("unreachable host should fail closed")
	}
	if NewOpenAIClient(server.URL, "gpt-4o").Validate(context.Background(), "k") {
		t.Error("unreachable host should fail closed")
	}
}
