package memory

import (
	"context"
	"sync"

	"github.com/ottobonilla95/ai-assistant/internal/core"
)

// SessionRepo keeps rolling conversation history per counterparty key.
type SessionRepo struct {
	mu    sync.Mutex
	limit int
	hist  map[string][]core.Message
}

func NewSessionRepo(limit int) *SessionRepo {
	return &SessionRepo{
		limit: limit,
		hist:  make(map[string][]core.Message),
	}
}

func (s *SessionRepo) History(ctx context.Context, key string) ([]core.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Unknown keys yield an empty history, not an error
	msgs := s.hist[key]
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *SessionRepo) AppendTurn(ctx context.Context, key, userText, assistantText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(s.hist[key],
		core.Message{Role: core.RoleUser, Content: userText},
		core.Message{Role: core.RoleAssistant, Content: assistantText},
	)
	// FIFO trim keeps the tail
	if len(msgs) > s.limit {
		msgs = msgs[len(msgs)-s.limit:]
	}
	s.hist[key] = msgs
	return nil
}
