package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/repository"
)

// CredentialRepository implementa repository.CredentialRepository usando SQLite
type CredentialRepository struct {
	db *sqlx.DB
}

// Compiletime check: asegura que implementa la interfaz
var _ repository.CredentialRepository = (*CredentialRepository)(nil)

// NewCredentialRepository crea un nuevo repositorio de credenciales
func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// credentialRow mapea la tabla SQL a struct Go
type credentialRow struct {
	Provider string `db:"provider"`
	Position int    `db:"position"`
	APIKey   string `db:"api_key"`
	Status   string `db:"status"`
}

// GetKeys obtiene las claves de un proveedor, ordenadas por posición
func (r *CredentialRepository) GetKeys(ctx context.Context, provider domain.Provider) ([]string, error) {
	var rows []credentialRow

	query := `SELECT * FROM credentials WHERE provider = ? ORDER BY position ASC`
	if err := r.db.SelectContext(ctx, &rows, query, string(provider)); err != nil {
		return nil, fmt.Errorf("get keys: %w", err)
	}

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.APIKey)
	}

	return keys, nil
}

// SaveKeys reemplaza todas las claves de un proveedor.
// Las posiciones se reasignan desde cero y el estado vuelve a 'untested';
// SaveStatuses restaura los estados conocidos después.
func (r *CredentialRepository) SaveKeys(ctx context.Context, provider domain.Provider, keys []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE provider = ?`, string(provider)); err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}

	query := `
		INSERT INTO credentials (provider, position, api_key, status)
		VALUES (:provider, :position, :api_key, 'untested')
	`

	for i, key := range keys {
		_, err := tx.NamedExecContext(ctx, query, map[string]interface{}{
			"provider": string(provider),
			"position": i,
			"api_key":  key,
		})
		if err != nil {
			return fmt.Errorf("insert key %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// GetStatuses obtiene los estados de las claves de un proveedor, por posición.
// Un valor desconocido en la tabla se trata como 'untested'.
func (r *CredentialRepository) GetStatuses(ctx context.Context, provider domain.Provider) ([]domain.CredentialStatus, error) {
	var rows []credentialRow

	query := `SELECT * FROM credentials WHERE provider = ? ORDER BY position ASC`
	if err := r.db.SelectContext(ctx, &rows, query, string(provider)); err != nil {
		return nil, fmt.Errorf("get statuses: %w", err)
	}

	statuses := make([]domain.CredentialStatus, 0, len(rows))
	for _, row := range rows {
		statuses = append(statuses, parseStatus(row.Status))
	}

	return statuses, nil
}

// SaveStatuses actualiza los estados por posición. Si la cantidad no
// coincide con las filas existentes, las posiciones sobrantes se ignoran.
func (r *CredentialRepository) SaveStatuses(ctx context.Context, provider domain.Provider, statuses []domain.CredentialStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE credentials SET status = ? WHERE provider = ? AND position = ?`

	for i, status := range statuses {
		if _, err := tx.ExecContext(ctx, query, string(status), string(provider), i); err != nil {
			return fmt.Errorf("update status %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// parseStatus convierte el string de la tabla a un estado conocido
func parseStatus(s string) domain.CredentialStatus {
	switch domain.CredentialStatus(s) {
	case domain.StatusValid, domain.StatusInvalid, domain.StatusChecking:
		return domain.CredentialStatus(s)
	default:
		return domain.StatusUntested
	}
}
