package keypool

import (
	"log/slog"
	"sync"

	"github.com/elsanchez/niche-finder/internal/domain"
)

// Persister guarda keys y estados tras cada mutación (write-through).
// Las escrituras son best-effort: un fallo se registra, nunca bloquea la UI.
type Persister interface {
	SaveKeys(provider domain.Provider, keys []string) error
	SaveStatuses(provider domain.Provider, statuses []domain.CredentialStatus) error
}

// Store es la lista ordenada de credenciales de un proveedor.
// Invariante: len(statuses) == len(keys), alineados por índice.
// El índice activo es solo informativo para la UI; se limpia ante
// cualquier fallo o mutación del pool.
//
// Las generaciones y validaciones corren en goroutines, así que todas
// las operaciones toman el lock.
type Store struct {
	mu        sync.Mutex
	provider  domain.Provider
	keys      []string
	statuses  []domain.CredentialStatus
	active    int // -1 = ninguna key activa
	persister Persister
}

// NewStore crea un store vacío para un proveedor
func NewStore(provider domain.Provider, persister Persister) *Store {
	return &Store{
		provider:  provider,
		active:    -1,
		persister: persister,
	}
}

// Load carga el estado persistido. Si las longitudes no coinciden
// (estado corrupto), los estados se descartan y se reinician a untested.
func (s *Store) Load(keys []string, statuses []domain.CredentialStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = append([]string(nil), keys...)
	if len(statuses) == len(keys) {
		s.statuses = append([]domain.CredentialStatus(nil), statuses...)
	} else {
		if statuses != nil {
			slog.Warn("discarding misaligned credential statuses",
				"provider", s.provider, "keys", len(keys), "statuses", len(statuses))
		}
		s.statuses = make([]domain.CredentialStatus, len(keys))
		for i := range s.statuses {
			s.statuses[i] = domain.StatusUntested
		}
	}
	s.active = -1
}

// Add agrega una key al final con estado untested
func (s *Store) Add(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = append(s.keys, key)
	s.statuses = append(s.statuses, domain.StatusUntested)
	s.active = -1
	s.persistKeys()
	s.persistStatuses()
}

// Remove elimina la key en el índice dado y realinea estados e índice
// activo. Fuera de rango es no-op.
func (s *Store) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.keys) {
		return
	}

	s.keys = append(s.keys[:index], s.keys[index+1:]...)
	s.statuses = append(s.statuses[:index], s.statuses[index+1:]...)

	switch {
	case s.active == index:
		s.active = -1
	case s.active > index:
		s.active--
	}

	s.persistKeys()
	s.persistStatuses()
}

// MarkInvalid marca la key como inválida. Idempotente: si ya era
// inválida no hay cambio de estado ni escritura.
func (s *Store) MarkInvalid(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.statuses) {
		return
	}
	if s.statuses[index] == domain.StatusInvalid {
		return
	}
	s.statuses[index] = domain.StatusInvalid
	s.persistStatuses()
}

// ReplaceAll reemplaza la lista completa (edición por texto libre).
// Todos los estados vuelven a untested; la revalidación masiva que
// sigue al guardado los resuelve enseguida.
func (s *Store) ReplaceAll(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = append([]string(nil), keys...)
	s.statuses = make([]domain.CredentialStatus, len(keys))
	for i := range s.statuses {
		s.statuses[i] = domain.StatusUntested
	}
	s.active = -1
	s.persistKeys()
	s.persistStatuses()
}

// MarkAllChecking pone todos los estados en checking (spinners en la UI)
func (s *Store) MarkAllChecking() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.statuses {
		s.statuses[i] = domain.StatusChecking
	}
}

// SetStatuses aplica los resultados de una revalidación masiva.
// Se ignora si la longitud no coincide (el pool cambió entre medio).
func (s *Store) SetStatuses(statuses []domain.CredentialStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(statuses) != len(s.keys) {
		return
	}
	s.statuses = append([]domain.CredentialStatus(nil), statuses...)
	s.persistStatuses()
}

// SetActive registra la key que sirvió la última llamada exitosa
func (s *Store) SetActive(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.keys) {
		return
	}
	s.active = index
}

// ClearActive limpia el indicador de key activa
func (s *Store) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = -1
}

// ActiveIndex devuelve el índice activo, o -1 si no hay
func (s *Store) ActiveIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Keys devuelve una copia de la lista de keys
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

// Statuses devuelve una copia de los estados
func (s *Store) Statuses() []domain.CredentialStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CredentialStatus(nil), s.statuses...)
}

// Len devuelve la cantidad de keys
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// HasValid indica si alguna key está marcada como válida.
// Es la precondición rápida antes de disparar una generación.
func (s *Store) HasValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.statuses {
		if st == domain.StatusValid {
			return true
		}
	}
	return false
}

// Provider devuelve el proveedor del pool
func (s *Store) Provider() domain.Provider {
	return s.provider
}

// persistKeys se llama con el lock tomado
func (s *Store) persistKeys() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveKeys(s.provider, s.keys); err != nil {
		slog.Warn("persist credential keys", "provider", s.provider, "error", err)
	}
}

// persistStatuses se llama con el lock tomado
func (s *Store) persistStatuses() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveStatuses(s.provider, s.statuses); err != nil {
		slog.Warn("persist credential statuses", "provider", s.provider, "error", err)
	}
}
