// Package generator coordinates credential pools, provider clients and
// the failover loop into the operations the UI triggers. Every call
// walks the pool of the provider that owns the selected model, marks
// the credentials that fail and records the one that served.
package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/keypool"
	"github.com/elsanchez/niche-finder/internal/orchestrator"
	"github.com/elsanchez/niche-finder/internal/provider"
)

// ErrUnknownProvider indica que no hay cliente ni pool para el proveedor
var ErrUnknownProvider = errors.New("unknown provider")

// Service runs generations against whichever provider owns the
// currently selected model.
type Service struct {
	mu    sync.RWMutex
	model string

	pools   map[domain.Provider]*keypool.Store
	clients map[domain.Provider]provider.Client
}

// NewService crea el servicio con los pools y clientes de cada proveedor
func NewService(model string, pools map[domain.Provider]*keypool.Store, clients map[domain.Provider]provider.Client) *Service {
	return &Service{
		model:   model,
		pools:   pools,
		clients: clients,
	}
}

// SetModel cambia el modelo seleccionado
func (s *Service) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
}

// Model devuelve el modelo seleccionado
func (s *Service) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Pool devuelve el pool del proveedor del modelo seleccionado
func (s *Service) Pool() (*keypool.Store, error) {
	p := domain.ProviderForModel(s.Model())
	pool, ok := s.pools[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}
	return pool, nil
}

// PoolFor devuelve el pool de un proveedor concreto (key manager)
func (s *Service) PoolFor(p domain.Provider) (*keypool.Store, error) {
	pool, ok := s.pools[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}
	return pool, nil
}

func (s *Service) client() (provider.Client, *keypool.Store, error) {
	p := domain.ProviderForModel(s.Model())

	c, ok := s.clients[p]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}

	pool, ok := s.pools[p]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}

	return c, pool, nil
}

// run ejecuta una llamada con failover sobre el pool actual. Cada key
// que falla queda marcada inválida; la que sirve queda como activa.
func run[T any](ctx context.Context, s *Service, call func(provider.Client, string) orchestrator.CallFunc[T]) (T, error) {
	var zero T

	c, pool, err := s.client()
	if err != nil {
		return zero, err
	}

	result, served, err := orchestrator.GenerateWithFailover(ctx, pool.Keys(), call(c, s.Model()), pool.MarkInvalid)
	if err != nil {
		pool.ClearActive()
		return zero, err
	}

	pool.SetActive(served)
	return result, nil
}

// AnalyzeNiches genera niches relacionados a una idea
func (s *Service) AnalyzeNiches(ctx context.Context, history []domain.ChatMessage, req provider.GenerationRequest) (domain.AnalysisResult, error) {
	return run(ctx, s, func(c provider.Client, model string) orchestrator.CallFunc[domain.AnalysisResult] {
		return provider.StructuredCall[domain.AnalysisResult](c, model, history, provider.BuildNicheAnalysisPrompt(req))
	})
}

// AnalyzeDirect analiza la keyword literal como un único niche
func (s *Service) AnalyzeDirect(ctx context.Context, history []domain.ChatMessage, req provider.GenerationRequest) (domain.AnalysisResult, error) {
	return run(ctx, s, func(c provider.Client, model string) orchestrator.CallFunc[domain.AnalysisResult] {
		return provider.StructuredCall[domain.AnalysisResult](c, model, history, provider.BuildDirectAnalysisPrompt(req))
	})
}

// MoreVideoIdeas genera ideas de video adicionales para un niche
func (s *Service) MoreVideoIdeas(ctx context.Context, history []domain.ChatMessage, niche domain.Niche, req provider.GenerationRequest) (domain.VideoIdeasResult, error) {
	return run(ctx, s, func(c provider.Client, model string) orchestrator.CallFunc[domain.VideoIdeasResult] {
		return provider.StructuredCall[domain.VideoIdeasResult](c, model, history, provider.BuildVideoIdeasPrompt(niche, req))
	})
}

// ContentPlan genera un plan de contenido detallado para un niche
func (s *Service) ContentPlan(ctx context.Context, history []domain.ChatMessage, niche domain.Niche, req provider.GenerationRequest) (domain.ContentPlanResult, error) {
	return run(ctx, s, func(c provider.Client, model string) orchestrator.CallFunc[domain.ContentPlanResult] {
		return provider.StructuredCall[domain.ContentPlanResult](c, model, history, provider.BuildContentPlanPrompt(niche, req))
	})
}

// Chat responde un turno del chat de entrenamiento en texto libre
func (s *Service) Chat(ctx context.Context, history []domain.ChatMessage, prompt string) (string, error) {
	return run(ctx, s, func(c provider.Client, model string) orchestrator.CallFunc[string] {
		return provider.TextCall(c, model, history, prompt)
	})
}

// ValidateKeys revalida todas las keys de un proveedor y aplica el
// resultado al pool. Devuelve los estados finales.
func (s *Service) ValidateKeys(ctx context.Context, p domain.Provider) ([]domain.CredentialStatus, error) {
	c, ok := s.clients[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}

	pool, ok := s.pools[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}

	pool.MarkAllChecking()

	statuses := provider.ValidateAll(ctx, c, pool.Keys())
	pool.SetStatuses(statuses)

	return statuses, nil
}
