package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ottobonilla95/ai-assistant/internal/core"
)

type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

func (n *NoteRepo) AddNote(ctx context.Context, text string) (core.Note, error) {
	res, err := n.db.ExecContext(ctx, `INSERT INTO notes (text) VALUES (?)`, text)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Note{}, err
	}

	var note core.Note
	row := n.db.QueryRowContext(ctx, `SELECT id, text, created_at FROM notes WHERE id = ?`, id)
	if err := row.Scan(&note.ID, &note.Text, &note.CreatedAt); err != nil {
		return core.Note{}, fmt.Errorf("failed to read note back: %w", err)
	}
	return note, nil
}

func (n *NoteRepo) ListNotes(ctx context.Context, limit int) ([]core.Note, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := n.db.QueryContext(ctx,
		`SELECT id, text, created_at FROM notes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var note core.Note
		if err := rows.Scan(&note.ID, &note.Text, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Oldest first reads naturally in a chat reply
	for i, j := 0, len(notes)-1; i < j; i, j = i+1, j-1 {
		notes[i], notes[j] = notes[j], notes[i]
	}
	return notes, nil
}
