package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/providers/calendar"
)

const createEventSchema = `
{
  "type": "object",
  "properties": {
    "summary": { "type": "string", "description": "Event title" },
    "start": { "type": "string", "description": "Start time, RFC3339" },
    "end": { "type": "string", "description": "End time, RFC3339" },
    "location": { "type": "string", "description": "Optional location" }
  },
  "required": ["summary", "start", "end"]
}
`

const listTodaySchema = `
{
  "type": "object",
  "properties": {}
}
`

// Calendar is the slice of the calendar provider the tools need.
type Calendar interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int) ([]calendar.Event, error)
	CreateEvent(ctx context.Context, in calendar.EventInput) (*calendar.Event, error)
}

type calendarTools struct {
	client Calendar
	loc    *time.Location
}

func RegisterCalendarTools(reg *Registry, client Calendar, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	t := &calendarTools{client: client, loc: loc}
	reg.Register("calendar_create_event",
		"Create an event in the user's calendar",
		json.RawMessage(createEventSchema), t.create)
	reg.Register("calendar_list_today",
		"List the user's calendar events for today",
		json.RawMessage(listTodaySchema), t.listToday)
}

func (t *calendarTools) create(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Summary  string `json:"summary"`
		Start    string `json:"start"`
		End      string `json:"end"`
		Location string `json:"location"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if input.Summary == "" || input.Start == "" || input.End == "" {
		return "", fmt.Errorf("summary, start and end are required")
	}

	ev, err := t.client.CreateEvent(ctx, calendar.EventInput{
		Summary:  input.Summary,
		Start:    input.Start,
		End:      input.End,
		Location: input.Location,
		TimeZone: t.loc.String(),
	})
	if err != nil {
		return "", err
	}

	out, _ := json.Marshal(map[string]any{
		"success": true,
		"event":   ev,
	})
	return string(out), nil
}

func (t *calendarTools) listToday(ctx context.Context, args json.RawMessage) (string, error) {
	now := time.Now().In(t.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	events, err := t.client.ListEvents(ctx, dayStart, dayEnd, 0)
	if err != nil {
		return "", err
	}
	if events == nil {
		events = []calendar.Event{}
	}

	out, _ := json.Marshal(map[string]any{
		"success": true,
		"events":  events,
		"count":   len(events),
	})
	return string(out), nil
}
