package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/providers/calendar"
)

func TestFormat_NoEvents(t *testing.T) {
	day := time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC)
	got := Format(day, nil)

	if !strings.Contains(got, "Monday, 31 August") {
		t.Errorf("missing date line: %q", got)
	}
	if !strings.Contains(got, "No events on the calendar today.") {
		t.Errorf("missing empty-day line: %q", got)
	}
}

func TestFormat_WithEvents(t *testing.T) {
	day := time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC)
	events := []calendar.Event{
		{Summary: "Standup", Start: "2026-08-31T09:30:00Z", End: "2026-08-31T09:45:00Z"},
		{Summary: "Dentist", Start: "2026-08-31T14:00:00Z", End: "2026-08-31T15:00:00Z", Location: "Main St 4"},
		{Summary: "Company holiday", Start: "2026-08-31", End: "2026-09-01", AllDay: true},
	}

	got := Format(day, events)

	for _, want := range []string{
		"- 09:30: Standup",
		"- 14:00: Dentist (Main St 4)",
		"- all day: Company holiday",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}
