package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/core"
)

type ReminderRepo struct {
	db *sql.DB
}

func NewReminderRepo(db *sql.DB) *ReminderRepo {
	return &ReminderRepo{db: db}
}

func (r *ReminderRepo) Put(ctx context.Context, rem core.Reminder) error {
	query := `INSERT INTO reminders (id, body, due_at, created_at, delivered) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, rem.ID, rem.Body, rem.DueAt.UTC(), rem.CreatedAt.UTC(), rem.Delivered)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepo) Get(ctx context.Context, id string) (core.Reminder, bool, error) {
	query := `SELECT id, body, due_at, created_at, delivered FROM reminders WHERE id = ?`
	rem, err := scanReminder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Reminder{}, false, nil
	}
	if err != nil {
		return core.Reminder{}, false, err
	}
	return rem, true, nil
}

func (r *ReminderRepo) Due(ctx context.Context, now time.Time) ([]core.Reminder, error) {
	query := `SELECT id, body, due_at, created_at, delivered FROM reminders
		WHERE delivered = 0 AND due_at <= ? ORDER BY created_at, rowid`

	rows, err := r.db.QueryContext(ctx, query, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer rows.Close()

	var due []core.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		due = append(due, rem)
	}
	return due, rows.Err()
}

func (r *ReminderRepo) Pending(ctx context.Context) ([]core.Reminder, error) {
	query := `SELECT id, body, due_at, created_at, delivered FROM reminders
		WHERE delivered = 0 ORDER BY created_at, rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending reminders: %w", err)
	}
	defer rows.Close()

	var pending []core.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, rem)
	}
	return pending, rows.Err()
}

func (r *ReminderRepo) MarkDelivered(ctx context.Context, id string) error {
	// No rows affected (unknown or already delivered) is not an error
	_, err := r.db.ExecContext(ctx, `UPDATE reminders SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder delivered: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (core.Reminder, error) {
	var rem core.Reminder
	if err := row.Scan(&rem.ID, &rem.Body, &rem.DueAt, &rem.CreatedAt, &rem.Delivered); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Reminder{}, err
		}
		return core.Reminder{}, fmt.Errorf("failed to scan reminder: %w", err)
	}
	return rem, nil
}
