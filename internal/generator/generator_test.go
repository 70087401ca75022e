package generator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/keypool"
	"github.com/elsanchez/niche-finder/internal/orchestrator"
	"github.com/elsanchez/niche-finder/internal/provider"
)

// stubClient responde con un payload fijo y falla para keys marcadas
type stubClient struct {
	provider domain.Provider
	response string
	badKeys  map[string]bool
	calls    []string
}

func (c *stubClient) Provider() domain.Provider { return c.provider }

func (c *stubClient) Complete(ctx context.Context, key string, req provider.CompletionRequest) (string, error) {
	c.calls = append(c.calls, key)
	if c.badKeys[key] {
		return "", fmt.Errorf("api error: invalid key")
	}
	return c.response, nil
}

func (c *stubClient) Validate(ctx context.Context, key string) bool {
	return !c.badKeys[key]
}

func newTestService(client *stubClient, keys ...string) (*Service, *keypool.Store) {
	pool := keypool.NewStore(client.provider, nil)
	pool.Load(keys, nil)

	svc := NewService("gemini-2.5-flash", map[domain.Provider]*keypool.Store{
		client.provider: pool,
	}, map[domain.Provider]provider.Client{
		client.provider: client,
	})

	return svc, pool
}

func TestService_AnalyzeNichesFailsOver(t *testing.T) {
	client := &stubClient{
		provider: domain.ProviderGemini,
		response: `{"niches":[{"niche_name":{"original":"a","translated":"a"}}]}`,
		badKeys:  map[string]bool{"bad-1": true, "bad-2": true},
	}

	svc, pool := newTestService(client, "bad-1", "bad-2", "good")

	result, err := svc.AnalyzeNiches(context.Background(), nil, provider.GenerationRequest{Idea: "gardening"})
	if err != nil {
		t.Fatalf("expected success after failover: %v", err)
	}

	if len(result.Niches) != 1 {
		t.Fatalf("expected 1 niche, got %d", len(result.Niches))
	}

	// Las dos primeras quedan inválidas, la tercera queda activa
	statuses := pool.Statuses()
	if statuses[0] != domain.StatusInvalid || statuses[1] != domain.StatusInvalid {
		t.Errorf("expected first two keys invalid, got %v", statuses)
	}
	if statuses[2] == domain.StatusInvalid {
		t.Errorf("serving key must not be invalid, got %v", statuses)
	}

	if pool.ActiveIndex() != 2 {
		t.Errorf("expected active index 2, got %d", pool.ActiveIndex())
	}

	if len(client.calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", len(client.calls))
	}
}

func TestService_ExhaustionClearsActive(t *testing.T) {
	client := &stubClient{
		provider: domain.ProviderGemini,
		badKeys:  map[string]bool{"bad-1": true, "bad-2": true},
	}

	svc, pool := newTestService(client, "bad-1", "bad-2")
	pool.SetActive(0)

	_, err := svc.AnalyzeNiches(context.Background(), nil, provider.GenerationRequest{Idea: "x"})
	if err == nil {
		t.Fatal("expected exhaustion error")
	}

	var exhausted *orchestrator.ExhaustedCredentialsError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedCredentialsError, got %v", err)
	}

	if exhausted.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", exhausted.Attempts)
	}

	if pool.ActiveIndex() != -1 {
		t.Errorf("expected active cleared after exhaustion, got %d", pool.ActiveIndex())
	}
}

func TestService_ModelSelectsProvider(t *testing.T) {
	gemini := &stubClient{provider: domain.ProviderGemini, response: `{"niches":[]}`}
	openai := &stubClient{provider: domain.ProviderOpenAI, response: `{"niches":[]}`}

	geminiPool := keypool.NewStore(domain.ProviderGemini, nil)
	geminiPool.Load([]string{"g-key"}, nil)
	openaiPool := keypool.NewStore(domain.ProviderOpenAI, nil)
	openaiPool.Load([]string{"o-key"}, nil)

	svc := NewService("gemini-2.5-flash", map[domain.Provider]*keypool.Store{
		domain.ProviderGemini: geminiPool,
		domain.ProviderOpenAI: openaiPool,
	}, map[domain.Provider]provider.Client{
		domain.ProviderGemini: gemini,
		domain.ProviderOpenAI: openai,
	})

	if _, err := svc.AnalyzeNiches(context.Background(), nil, provider.GenerationRequest{Idea: "x"}); err != nil {
		t.Fatalf("gemini call failed: %v", err)
	}
	if len(gemini.calls) != 1 || len(openai.calls) != 0 {
		t.Errorf("expected gemini to serve, got gemini=%d openai=%d", len(gemini.calls), len(openai.calls))
	}

	svc.SetModel("gpt-4o")

	if _, err := svc.AnalyzeNiches(context.Background(), nil, provider.GenerationRequest{Idea: "x"}); err != nil {
		t.Fatalf("openai call failed: %v", err)
	}
	if len(openai.calls) != 1 {
		t.Errorf("expected openai to serve after model switch, got %d", len(openai.calls))
	}
}

func TestService_ChatReturnsFreeText(t *testing.T) {
	client := &stubClient{provider: domain.ProviderGemini, response: "Understood, I will remember that."}
	svc, _ := newTestService(client, "key")

	reply, err := svc.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Text: "prefer faceless channels"},
	}, "acknowledge")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	if reply != "Understood, I will remember that." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestService_ValidateKeysAppliesResults(t *testing.T) {
	client := &stubClient{
		provider: domain.ProviderGemini,
		badKeys:  map[string]bool{"bad": true},
	}

	svc, pool := newTestService(client, "good", "bad")

	statuses, err := svc.ValidateKeys(context.Background(), domain.ProviderGemini)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if statuses[0] != domain.StatusValid || statuses[1] != domain.StatusInvalid {
		t.Errorf("unexpected statuses: %v", statuses)
	}

	got := pool.Statuses()
	if got[0] != domain.StatusValid || got[1] != domain.StatusInvalid {
		t.Errorf("pool statuses not applied: %v", got)
	}
}

func TestService_UnknownProvider(t *testing.T) {
	svc := NewService("gemini-2.5-flash", map[domain.Provider]*keypool.Store{}, map[domain.Provider]provider.Client{})

	_, err := svc.AnalyzeNiches(context.Background(), nil, provider.GenerationRequest{Idea: "x"})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}
