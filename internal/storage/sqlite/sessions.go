package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

type SessionRepo struct {
	db    *sql.DB
	limit int
}

func NewSessionRepo(db *sql.DB, limit int) *SessionRepo {
	return &SessionRepo{db: db, limit: limit}
}

func (s *SessionRepo) History(ctx context.Context, key string) ([]core.Message, error) {
	// Fetch the LAST 'limit' entries by ordering DESC
	query := `SELECT role, content FROM messages WHERE session_key = ? ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, key, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var messages []core.Message
	for rows.Next() {
		var msg core.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse back to chronological order for the LLM
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Str("key", key).Msg("loaded session history")
	return messages, nil
}

func (s *SessionRepo) AppendTurn(ctx context.Context, key, userText, assistantText string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO messages (session_key, role, content) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert, key, core.RoleUser, userText); err != nil {
		return fmt.Errorf("failed to insert user message: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insert, key, core.RoleAssistant, assistantText); err != nil {
		return fmt.Errorf("failed to insert assistant message: %w", err)
	}

	// Evict everything beyond the newest 'limit' entries
	trim := `DELETE FROM messages WHERE session_key = ? AND id NOT IN (
		SELECT id FROM messages WHERE session_key = ? ORDER BY id DESC LIMIT ?)`
	if _, err := tx.ExecContext(ctx, trim, key, key, s.limit); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	return tx.Commit()
}
