package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elsanchez/niche-finder/internal/domain"
)

const defaultOpenAIEndpoint = "https://api.openai.com"

// OpenAIClient talks to the OpenAI chat completions API.
type OpenAIClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client for the given model. An empty
// endpoint uses the public API host.
func NewOpenAIClient(endpoint, model string) *OpenAIClient {
	if endpoint == "" {
		endpoint = defaultOpenAIEndpoint
	}
	return &OpenAIClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *OpenAIClient) Provider() domain.Provider {
	return domain.ProviderOpenAI
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the history plus the prompt as a chat completion.
// Training history roles map user->user, model->assistant.
func (c *OpenAIClient) Complete(ctx context.Context, key string, req CompletionRequest) (string, error) {
	messages := make([]openAIMessage, 0, len(req.History)+1)
	for _, msg := range req.History {
		role := "user"
		if msg.Role == domain.RoleModel {
			role = "assistant"
		}
		messages = append(messages, openAIMessage{Role: role, Content: msg.Text})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.Prompt})

	model := req.Model
	if model == "" {
		model = c.model
	}

	payload := openAIRequest{Model: model, Messages: messages}
	if req.JSONMode {
		payload.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal openai payload: %w", err)
	}

	url := c.endpoint + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read openai response: %w", err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse openai response (%s): %w", resp.Status, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("openai error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error %s", resp.Status)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Validate probes the models endpoint with the key.
func (c *OpenAIClient) Validate(ctx context.Context, key string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/v1/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode == http.StatusOK
}
