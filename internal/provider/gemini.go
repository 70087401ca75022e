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

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"

// GeminiClient talks to the Gemini generateContent REST API.
type GeminiClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient builds a client for the given model. An empty
// endpoint uses the public API host.
func NewGeminiClient(endpoint, model string) *GeminiClient {
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}
	return &GeminiClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *GeminiClient) Provider() domain.Provider {
	return domain.ProviderGemini
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Complete sends the history plus the prompt as a generateContent call.
func (c *GeminiClient) Complete(ctx context.Context, key string, req CompletionRequest) (string, error) {
	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, msg := range req.History {
		contents = append(contents, geminiContent{
			Role:  string(msg.Role),
			Parts: []geminiPart{{Text: msg.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: req.Prompt}},
	})

	payload := geminiRequest{Contents: contents}
	if req.JSONMode {
		payload.GenerationConfig = &geminiGenerationConfig{ResponseMIMEType: "application/json"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini payload: %w", err)
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", key)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse gemini response (%s): %w", resp.Status, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error %s: %s", parsed.Error.Status, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error %s", resp.Status)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// Validate probes the models listing endpoint with the key.
func (c *GeminiClient) Validate(ctx context.Context, key string) bool {
	url := fmt.Sprintf("%s/v1beta/models?pageSize=1", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-goog-api-key", key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode == http.StatusOK
}
