package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

// ErrInvalidSchedule is returned when a reminder request carries neither a
// parseable explicit time nor any positive delay.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule is the timing input for a new reminder. An explicit At wins over
// the delay fields; otherwise all supplied delays are summed and added to
// the creation time.
type Schedule struct {
	At           string `json:"time,omitempty"` // explicit time, RFC3339 or "2006-01-02 15:04"
	DelayMinutes int    `json:"delayMinutes,omitempty"`
	DelayHours   int    `json:"delayHours,omitempty"`
	DelayDays    int    `json:"delayDays,omitempty"`
}

var explicitLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type Service struct {
	repo core.ReminderRepository
	loc  *time.Location
}

func NewService(repo core.ReminderRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc}
}

// Create stores a new reminder due at the time the schedule resolves to.
func (s *Service) Create(ctx context.Context, body string, sched Schedule) (core.Reminder, error) {
	now := time.Now()
	dueAt, err := resolveDue(now, sched, s.loc)
	if err != nil {
		return core.Reminder{}, err
	}

	rem := core.Reminder{
		ID:        "rem_" + uuid.NewString(),
		Body:      body,
		DueAt:     dueAt,
		CreatedAt: now,
	}
	if err := s.repo.Put(ctx, rem); err != nil {
		return core.Reminder{}, fmt.Errorf("store reminder: %w", err)
	}

	log.FromCtx(ctx).Info().
		Str("id", rem.ID).
		Time("dueAt", rem.DueAt).
		Msg("reminder created")
	return rem, nil
}

func (s *Service) Due(ctx context.Context, now time.Time) ([]core.Reminder, error) {
	return s.repo.Due(ctx, now)
}

func (s *Service) Pending(ctx context.Context) ([]core.Reminder, error) {
	return s.repo.Pending(ctx)
}

func (s *Service) MarkDelivered(ctx context.Context, id string) error {
	return s.repo.MarkDelivered(ctx, id)
}

func resolveDue(now time.Time, sched Schedule, loc *time.Location) (time.Time, error) {
	if sched.At != "" {
		for _, layout := range explicitLayouts {
			if t, err := time.ParseInLocation(layout, sched.At, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: cannot parse time %q", ErrInvalidSchedule, sched.At)
	}

	delay := time.Duration(sched.DelayMinutes)*time.Minute +
		time.Duration(sched.DelayHours)*time.Hour +
		time.Duration(sched.DelayDays)*24*time.Hour
	if delay <= 0 {
		return time.Time{}, fmt.Errorf("%w: no explicit time and no positive delay", ErrInvalidSchedule)
	}
	return now.Add(delay), nil
}
