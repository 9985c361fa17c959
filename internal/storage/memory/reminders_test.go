package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/core"
)

func TestReminderRepo_Due(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepo()
	now := time.Now()

	reminders := []core.Reminder{
		{ID: "past", Body: "past", DueAt: now.Add(-time.Hour)},
		{ID: "exact", Body: "exact", DueAt: now},
		{ID: "future", Body: "future", DueAt: now.Add(time.Hour)},
		{ID: "done", Body: "done", DueAt: now.Add(-time.Hour), Delivered: true},
	}
	for _, rem := range reminders {
		if err := repo.Put(ctx, rem); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	due, err := repo.Due(ctx, now)
	if err != nil {
		t.Fatalf("Due: %v", err)
	}

	if len(due) != 2 {
		t.Fatalf("expected 2 due reminders, got %d", len(due))
	}
	// Creation order is preserved
	if due[0].ID != "past" || due[1].ID != "exact" {
		t.Errorf("unexpected order: %s, %s", due[0].ID, due[1].ID)
	}
	for _, rem := range due {
		if rem.Delivered {
			t.Errorf("delivered reminder %s returned as due", rem.ID)
		}
		if rem.DueAt.After(now) {
			t.Errorf("future reminder %s returned as due", rem.ID)
		}
	}
}

func TestReminderRepo_MarkDeliveredIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepo()
	now := time.Now()

	if err := repo.Put(ctx, core.Reminder{ID: "a", DueAt: now.Add(-time.Minute)}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := repo.MarkDelivered(ctx, "a"); err != nil {
		t.Fatalf("first MarkDelivered: %v", err)
	}
	if err := repo.MarkDelivered(ctx, "a"); err != nil {
		t.Fatalf("second MarkDelivered: %v", err)
	}

	rem, ok, err := repo.Get(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !rem.Delivered {
		t.Error("reminder not marked delivered")
	}

	due, err := repo.Due(ctx, now)
	if err != nil {
		t.Fatalf("Due: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("expected no due reminders after delivery, got %d", len(due))
	}
}

func TestReminderRepo_MarkDeliveredUnknownID(t *testing.T) {
	repo := NewReminderRepo()
	if err := repo.MarkDelivered(context.Background(), "nope"); err != nil {
		t.Errorf("unknown id should be a no-op, got %v", err)
	}
}

func TestReminderRepo_Pending(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepo()
	now := time.Now()

	_ = repo.Put(ctx, core.Reminder{ID: "a", DueAt: now.Add(time.Hour)})
	_ = repo.Put(ctx, core.Reminder{ID: "b", DueAt: now.Add(2 * time.Hour)})
	_ = repo.MarkDelivered(ctx, "a")

	pending, err := repo.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "b" {
		t.Errorf("expected only b pending, got %v", pending)
	}
}
