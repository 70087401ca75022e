package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes markdown code fences from model output.
// Models wrap JSON in ```json blocks often enough that decoding the
// raw text directly would fail on otherwise valid responses.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeJSON strips fences and unmarshals the model output into T.
// Malformed output is a provider error: the credential scan treats it
// the same as a rejected key.
func DecodeJSON[T any](raw string) (T, error) {
	var out T
	cleaned := StripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return out, fmt.Errorf("decode model output: %w", err)
	}
	return out, nil
}
