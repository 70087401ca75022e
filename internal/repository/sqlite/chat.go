package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/elsanchez/niche-finder/internal/domain"
	"github.com/elsanchez/niche-finder/internal/repository"
)

// ChatRepository implementa repository.ChatRepository usando SQLite
type ChatRepository struct {
	db *sqlx.DB
}

var _ repository.ChatRepository = (*ChatRepository)(nil)

// NewChatRepository crea un nuevo repositorio de historial de chat
func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

type chatRow struct {
	ID      int64  `db:"id"`
	Role    string `db:"role"`
	Content string `db:"content"`
}

// GetHistory obtiene el historial completo en orden de inserción
func (r *ChatRepository) GetHistory(ctx context.Context) ([]domain.ChatMessage, error) {
	var rows []chatRow

	query := `SELECT * FROM chat_messages ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get chat history: %w", err)
	}

	messages := make([]domain.ChatMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, domain.ChatMessage{
			Role: domain.ChatRole(row.Role),
			Text: row.Content,
		})
	}

	return messages, nil
}

// SaveHistory reemplaza el historial completo
func (r *ChatRepository) SaveHistory(ctx context.Context, messages []domain.ChatMessage) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}

	query := `INSERT INTO chat_messages (role, content) VALUES (?, ?)`

	for _, msg := range messages {
		if _, err := tx.ExecContext(ctx, query, string(msg.Role), msg.Text); err != nil {
			return fmt.Errorf("insert chat message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
