package keypool

import (
	"context"
	"time"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/repository"
)

const persistTimeout = 5 * time.Second

// RepoPersister adapta un CredentialRepository al write-through del
// Store. Cada escritura usa su propio contexto con timeout porque el
// Store no arrastra el contexto de la operación que lo mutó.
type RepoPersister struct {
	repo repository.CredentialRepository
}

// NewRepoPersister crea el adaptador de persistencia
func NewRepoPersister(repo repository.CredentialRepository) *RepoPersister {
	return &RepoPersister{repo: repo}
}

var _ Persister = (*RepoPersister)(nil)

// SaveKeys reescribe las filas del proveedor
func (p *RepoPersister) SaveKeys(provider domain.Provider, keys []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return p.repo.SaveKeys(ctx, provider, keys)
}

// SaveStatuses actualiza los estados del proveedor
func (p *RepoPersister) SaveStatuses(provider domain.Provider, statuses []domain.CredentialStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return p.repo.SaveStatuses(ctx, provider, statuses)
}
