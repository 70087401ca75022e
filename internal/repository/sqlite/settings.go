package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/elsanchez/niche-finder/internal/repository"
)

// SettingsRepository implementa repository.SettingsRepository usando SQLite
type SettingsRepository struct {
	db *sqlx.DB
}

var _ repository.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository crea un nuevo repositorio de configuración
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get obtiene un valor. Una clave inexistente devuelve string vacío sin error.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string

	query := `SELECT value FROM settings WHERE key = ?`
	if err := r.db.GetContext(ctx, &value, query, key); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}

	return value, nil
}

// Set inserta o reemplaza un valor
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (:key, :value)
		ON CONFLICT(key) DO UPDATE SET value = :value
	`

	_, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"key":   key,
		"value": value,
	})
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}

	return nil
}
