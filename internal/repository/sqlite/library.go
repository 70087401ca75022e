package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/repository"
)

// LibraryRepository implementa repository.LibraryRepository usando SQLite.
// Cada nicho guardado se serializa como JSON en una sola columna.
type LibraryRepository struct {
	db *sqlx.DB
}

var _ repository.LibraryRepository = (*LibraryRepository)(nil)

// NewLibraryRepository crea un nuevo repositorio de nichos guardados
func NewLibraryRepository(db *sqlx.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

type libraryRow struct {
	NicheName string `db:"niche_name"`
	Payload   string `db:"payload"`
	CreatedAt int64  `db:"created_at"`
}

// GetAll obtiene todos los nichos guardados, los más recientes primero.
// Una fila con payload corrupto se omite con un warning en vez de fallar.
func (r *LibraryRepository) GetAll(ctx context.Context) ([]domain.Niche, error) {
	var rows []libraryRow

	query := `SELECT * FROM saved_niches ORDER BY created_at DESC, niche_name ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get saved niches: %w", err)
	}

	niches := make([]domain.Niche, 0, len(rows))
	for _, row := range rows {
		var niche domain.Niche
		if err := json.Unmarshal([]byte(row.Payload), &niche); err != nil {
			slog.Warn("skipping corrupt saved niche", "name", row.NicheName, "error", err)
			continue
		}
		niches = append(niches, niche)
	}

	return niches, nil
}

// Save inserta o reemplaza un nicho por nombre
func (r *LibraryRepository) Save(ctx context.Context, niche domain.Niche) error {
	payload, err := json.Marshal(niche)
	if err != nil {
		return fmt.Errorf("marshal niche: %w", err)
	}

	query := `
		INSERT INTO saved_niches (niche_name, payload, created_at)
		VALUES (:niche_name, :payload, strftime('%s', 'now'))
		ON CONFLICT(niche_name) DO UPDATE SET payload = :payload
	`

	_, err = r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"niche_name": niche.NicheName.Original,
		"payload":    string(payload),
	})
	if err != nil {
		return fmt.Errorf("save niche: %w", err)
	}

	return nil
}

// Delete elimina un nicho por nombre
func (r *LibraryRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_niches WHERE niche_name = ?`, name); err != nil {
		return fmt.Errorf("delete niche: %w", err)
	}
	return nil
}

// DeleteAll vacía la biblioteca
func (r *LibraryRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_niches`); err != nil {
		return fmt.Errorf("delete all niches: %w", err)
	}
	return nil
}
