package core

import (
	"context"
	"time"
)

// ReminderRepository owns all reminder state. Callers receive value
// snapshots, never shared references.
type ReminderRepository interface {
	Put(ctx context.Context, r Reminder) error
	Get(ctx context.Context, id string) (Reminder, bool, error)
	// Due returns undelivered reminders with DueAt <= now, in creation order.
	Due(ctx context.Context, now time.Time) ([]Reminder, error)
	// Pending returns all undelivered reminders in creation order.
	Pending(ctx context.Context) ([]Reminder, error)
	// MarkDelivered is idempotent; an unknown id is a no-op.
	MarkDelivered(ctx context.Context, id string) error
}

// SessionRepository keeps the rolling conversation history per
// counterparty key. History is capped; oldest entries are evicted first.
type SessionRepository interface {
	History(ctx context.Context, key string) ([]Message, error)
	AppendTurn(ctx context.Context, key, userText, assistantText string) error
}

type NoteRepository interface {
	AddNote(ctx context.Context, text string) (Note, error)
	ListNotes(ctx context.Context, limit int) ([]Note, error)
}
