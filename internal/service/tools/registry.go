package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

// Handler implements one named tool. Handlers return a JSON payload; any
// error is converted by the registry into a structured failure payload so
// the reasoning loop always receives parseable output.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

type Registry struct {
	defs     []core.Tool
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

func (r *Registry) Register(name, description string, schema json.RawMessage, h Handler) {
	r.defs = append(r.defs, core.Tool{
		Type: "function",
		Function: core.Function{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
	})
	r.handlers[name] = h
}

func (r *Registry) Definitions() []core.Tool {
	return r.defs
}

// Call invokes a tool by name. Failures never propagate as errors; they
// come back as {"success":false,"error":...} payloads.
func (r *Registry) Call(ctx context.Context, name, args string) string {
	h, ok := r.handlers[name]
	if !ok {
		return errorPayload(fmt.Sprintf("unknown tool %q", name))
	}

	result, err := h(ctx, json.RawMessage(args))
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("tool", name).Msg("tool call failed")
		return errorPayload(err.Error())
	}
	return result
}

func errorPayload(msg string) string {
	out, _ := json.Marshal(map[string]any{
		"success": false,
		"error":   msg,
	})
	return string(out)
}
