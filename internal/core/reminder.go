package core

import "time"

// Reminder is a stored intent to deliver a message at a future time.
// DueAt and CreatedAt are immutable after creation; Delivered only ever
// transitions false -> true.
type Reminder struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	DueAt     time.Time `json:"due_at"`
	CreatedAt time.Time `json:"created_at"`
	Delivered bool      `json:"delivered"`
}

// Note is a free-form text note saved by the owner.
type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
