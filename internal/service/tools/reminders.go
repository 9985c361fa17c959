package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/internal/service/reminder"
)

const createReminderSchema = `
{
  "type": "object",
  "properties": {
    "message": { "type": "string", "description": "What to remind the user about" },
    "time": { "type": "string", "description": "Explicit time, e.g. 2026-09-01 09:00. Wins over the delay fields if both are given" },
    "delayMinutes": { "type": "integer", "description": "Minutes from now" },
    "delayHours": { "type": "integer", "description": "Hours from now" },
    "delayDays": { "type": "integer", "description": "Days from now" }
  },
  "required": ["message"]
}
`

const listRemindersSchema = `
{
  "type": "object",
  "properties": {}
}
`

type reminderTools struct {
	svc *reminder.Service
}

// RegisterReminderTools exposes reminder creation and listing to the
// reasoning loop.
func RegisterReminderTools(reg *Registry, svc *reminder.Service) {
	t := &reminderTools{svc: svc}
	reg.Register("create_reminder",
		"Schedule a reminder to be delivered at a later time",
		json.RawMessage(createReminderSchema), t.create)
	reg.Register("list_reminders",
		"List reminders that have not fired yet",
		json.RawMessage(listRemindersSchema), t.list)
}

func (t *reminderTools) create(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Message string `json:"message"`
		reminder.Schedule
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if input.Message == "" {
		return "", fmt.Errorf("message is required")
	}

	rem, err := t.svc.Create(ctx, input.Message, input.Schedule)
	if err != nil {
		return "", err
	}

	out, _ := json.Marshal(map[string]any{
		"success":  true,
		"reminder": rem,
	})
	return string(out), nil
}

func (t *reminderTools) list(ctx context.Context, args json.RawMessage) (string, error) {
	pending, err := t.svc.Pending(ctx)
	if err != nil {
		return "", err
	}
	if pending == nil {
		pending = []core.Reminder{}
	}

	out, _ := json.Marshal(map[string]any{
		"success":   true,
		"reminders": pending,
		"count":     len(pending),
	})
	return string(out), nil
}
