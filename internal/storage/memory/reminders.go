package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/core"
)

// ReminderRepo is the volatile reminder store. State lives for the
// process lifetime only.
type ReminderRepo struct {
	mu    sync.Mutex
	items map[string]core.Reminder
	order []string
}

func NewReminderRepo() *ReminderRepo {
	return &ReminderRepo{
		items: make(map[string]core.Reminder),
	}
}

func (r *ReminderRepo) Put(ctx context.Context, rem core.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[rem.ID]; !exists {
		r.order = append(r.order, rem.ID)
	}
	r.items[rem.ID] = rem
	return nil
}

func (r *ReminderRepo) Get(ctx context.Context, id string) (core.Reminder, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rem, ok := r.items[id]
	return rem, ok, nil
}

func (r *ReminderRepo) Due(ctx context.Context, now time.Time) ([]core.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []core.Reminder
	for _, id := range r.order {
		rem := r.items[id]
		if !rem.Delivered && !rem.DueAt.After(now) {
			due = append(due, rem)
		}
	}
	return due, nil
}

func (r *ReminderRepo) Pending(ctx context.Context) ([]core.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []core.Reminder
	for _, id := range r.order {
		rem := r.items[id]
		if !rem.Delivered {
			pending = append(pending, rem)
		}
	}
	return pending, nil
}

func (r *ReminderRepo) MarkDelivered(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rem, ok := r.items[id]
	if !ok {
		// Unknown ids are a no-op, matching best-effort delivery
		return nil
	}
	rem.Delivered = true
	r.items[id] = rem
	return nil
}
