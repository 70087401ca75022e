// Package provider implements the generation and validation primitives
// against the Gemini and OpenAI REST APIs. The orchestrator consumes
// these as opaque call functions; all vendor-specific wire handling
// lives here.
package provider

import (
	"context"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/orchestrator"
)

// CompletionRequest is one prompt plus the training history that
// precedes it. JSONMode asks the vendor for a JSON-only response.
// Model overrides the client's default when set, so a model switch in
// the UI takes effect without rebuilding clients.
type CompletionRequest struct {
	History  []domain.ChatMessage
	Prompt   string
	Model    string
	JSONMode bool
}

// Client is a single provider's completion + validation capability.
type Client interface {
	Provider() domain.Provider

	// Complete runs one generation attempt with one credential.
	// Invalid keys, quota exhaustion, malformed output and network
	// failures all surface as errors; the orchestrator treats them
	// uniformly as "this credential failed now".
	Complete(ctx context.Context, key string, req CompletionRequest) (string, error)

	// Validate is a cheap capability probe. Fails closed: any
	// network or parse problem reports false, never an error.
	Validate(ctx context.Context, key string) bool
}

// StructuredCall adapts a JSON-producing prompt into a failover call
// that decodes the model output into T.
func StructuredCall[T any](c Client, model string, history []domain.ChatMessage, prompt string) orchestrator.CallFunc[T] {
	return func(ctx context.Context, key string) (T, error) {
		var zero T
		raw, err := c.Complete(ctx, key, CompletionRequest{History: history, Prompt: prompt, Model: model, JSONMode: true})
		if err != nil {
			return zero, err
		}
		return DecodeJSON[T](raw)
	}
}

// TextCall adapts a free-text prompt (training chat) into a failover call.
func TextCall(c Client, model string, history []domain.ChatMessage, prompt string) orchestrator.CallFunc[string] {
	return func(ctx context.Context, key string) (string, error) {
		return c.Complete(ctx, key, CompletionRequest{History: history, Prompt: prompt, Model: model})
	}
}
