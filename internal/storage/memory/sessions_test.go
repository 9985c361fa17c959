package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/ottobonilla95/ai-assistant/internal/core"
)

func TestSessionRepo_TrimsToLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(20)

	for i := 0; i < 11; i++ {
		err := repo.AppendTurn(ctx, "whatsapp:+1555",
			fmt.Sprintf("question %d", i),
			fmt.Sprintf("answer %d", i))
		if err != nil {
			t.Fatalf("AppendTurn: %v", err)
		}
	}

	history, err := repo.History(ctx, "whatsapp:+1555")
	if err != nil {
		t.Fatalf("History: %v", err)
	}

	if len(history) != 20 {
		t.Fatalf("expected 20 entries after 11 turns, got %d", len(history))
	}

	// The oldest turn (question 0 / answer 0) was evicted; the rest keep
	// their relative order, alternating user/assistant.
	for i, msg := range history {
		turn := i/2 + 1
		if i%2 == 0 {
			if msg.Role != core.RoleUser || msg.Content != fmt.Sprintf("question %d", turn) {
				t.Errorf("entry %d: got %s %q", i, msg.Role, msg.Content)
			}
		} else {
			if msg.Role != core.RoleAssistant || msg.Content != fmt.Sprintf("answer %d", turn) {
				t.Errorf("entry %d: got %s %q", i, msg.Role, msg.Content)
			}
		}
	}
}

func TestSessionRepo_UnknownKeyIsEmpty(t *testing.T) {
	repo := NewSessionRepo(20)

	history, err := repo.History(context.Background(), "whatsapp:+0000")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d entries", len(history))
	}
}

func TestSessionRepo_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(20)

	_ = repo.AppendTurn(ctx, "a", "hi", "hello")
	_ = repo.AppendTurn(ctx, "b", "hey", "yo")

	historyA, _ := repo.History(ctx, "a")
	if len(historyA) != 2 || historyA[0].Content != "hi" {
		t.Errorf("unexpected history for a: %v", historyA)
	}
	historyB, _ := repo.History(ctx, "b")
	if len(historyB) != 2 || historyB[0].Content != "hey" {
		t.Errorf("unexpected history for b: %v", historyB)
	}
}
