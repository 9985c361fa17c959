package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/core"
)

type NoteRepo struct {
	mu     sync.Mutex
	nextID int64
	notes  []core.Note
}

func NewNoteRepo() *NoteRepo {
	return &NoteRepo{nextID: 1}
}

func (n *NoteRepo) AddNote(ctx context.Context, text string) (core.Note, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	note := core.Note{
		ID:        n.nextID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	n.nextID++
	n.notes = append(n.notes, note)
	return note, nil
}

func (n *NoteRepo) ListNotes(ctx context.Context, limit int) ([]core.Note, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	notes := n.notes
	if limit > 0 && len(notes) > limit {
		notes = notes[len(notes)-limit:]
	}
	out := make([]core.Note, len(notes))
	copy(out, notes)
	return out, nil
}
