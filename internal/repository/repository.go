package repository

import (
	"context"

	"github.com/elsanchez/niche-finder/internal/domain"
)

// CredentialRepository persiste las listas de keys y estados por proveedor
type CredentialRepository interface {
	GetKeys(ctx context.Context, provider domain.Provider) ([]string, error)
	SaveKeys(ctx context.Context, provider domain.Provider, keys []string) error
	GetStatuses(ctx context.Context, provider domain.Provider) ([]domain.CredentialStatus, error)
	SaveStatuses(ctx context.Context, provider domain.Provider, statuses []domain.CredentialStatus) error
}

// ChatRepository persiste el historial del chat de entrenamiento
type ChatRepository interface {
	GetHistory(ctx context.Context) ([]domain.ChatMessage, error)
	SaveHistory(ctx context.Context, history []domain.ChatMessage) error
}

// LibraryRepository persiste la biblioteca de niches guardados
type LibraryRepository interface {
	GetAll(ctx context.Context) ([]domain.Niche, error)
	Save(ctx context.Context, niche domain.Niche) error
	Delete(ctx context.Context, nicheName string) error
	DeleteAll(ctx context.Context) error
}

// Claves de settings conocidas
const (
	SettingTrainingPassword = "training_password"
	SettingTheme            = "theme"
)

// SettingsRepository persiste pares clave/valor de configuración de la app
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
