package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ottobonilla95/ai-assistant/internal/core"
)

const saveNoteSchema = `
{
  "type": "object",
  "properties": {
    "text": { "type": "string", "description": "The note to save" }
  },
  "required": ["text"]
}
`

const listNotesSchema = `
{
  "type": "object",
  "properties": {
    "limit": { "type": "integer", "description": "Maximum notes to return" }
  }
}
`

type noteTools struct {
	repo core.NoteRepository
}

func RegisterNoteTools(reg *Registry, repo core.NoteRepository) {
	t := &noteTools{repo: repo}
	reg.Register("save_note",
		"Save a free-form note for the user",
		json.RawMessage(saveNoteSchema), t.save)
	reg.Register("list_notes",
		"List the most recent saved notes",
		json.RawMessage(listNotesSchema), t.list)
}

func (t *noteTools) save(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if input.Text == "" {
		return "", fmt.Errorf("text is required")
	}

	note, err := t.repo.AddNote(ctx, input.Text)
	if err != nil {
		return "", err
	}

	out, _ := json.Marshal(map[string]any{
		"success": true,
		"note":    note,
	})
	return string(out), nil
}

func (t *noteTools) list(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Limit int `json:"limit"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &input); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
	}

	notes, err := t.repo.ListNotes(ctx, input.Limit)
	if err != nil {
		return "", err
	}
	if notes == nil {
		notes = []core.Note{}
	}

	out, _ := json.Marshal(map[string]any{
		"success": true,
		"notes":   notes,
		"count":   len(notes),
	})
	return string(out), nil
}
