package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/providers/calendar"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

type Calendar interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int) ([]calendar.Event, error)
}

type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Service builds and delivers the daily agenda summary to the owner.
type Service struct {
	cal     Calendar
	sender  Sender
	ownerTo string
	loc     *time.Location
}

func NewService(cal Calendar, sender Sender, ownerTo string, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{cal: cal, sender: sender, ownerTo: ownerTo, loc: loc}
}

// SendDaily fetches today's events and sends the formatted summary.
func (s *Service) SendDaily(ctx context.Context) error {
	now := time.Now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	events, err := s.cal.ListEvents(ctx, dayStart, dayEnd, 0)
	if err != nil {
		return fmt.Errorf("fetch today's events: %w", err)
	}

	text := Format(now, events)
	if err := s.sender.Send(ctx, s.ownerTo, text); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	log.FromCtx(ctx).Info().Int("events", len(events)).Msg("daily digest sent")
	return nil
}

// Format renders the agenda as plain chat text.
func Format(day time.Time, events []calendar.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Good morning! Here's your day, %s:\n", day.Format("Monday, 2 January"))

	if len(events) == 0 {
		b.WriteString("\nNo events on the calendar today.")
		return b.String()
	}

	for _, ev := range events {
		b.WriteString("\n- ")
		if ev.AllDay {
			b.WriteString("all day")
		} else {
			b.WriteString(formatHour(ev.Start))
		}
		b.WriteString(": ")
		b.WriteString(ev.Summary)
		if ev.Location != "" {
			b.WriteString(" (" + ev.Location + ")")
		}
	}
	return b.String()
}

func formatHour(start string) string {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return start
	}
	return t.Format("15:04")
}
