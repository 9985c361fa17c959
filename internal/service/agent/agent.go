package agent

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/internal/service/tools"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

const defaultSystemPrompt = `You are a personal assistant reachable over chat.
You can schedule reminders, manage the user's calendar, save notes and look
things up on the web using the tools available to you. Keep replies short and
conversational. When the user asks for a reminder or an event, call the
matching tool instead of describing what you would do.`

type AIProvider interface {
	Chat(ctx context.Context, messages []core.Message, tools []core.Tool) (core.Message, error)
}

// Agent runs the reasoning loop: model turn, tool calls, repeat until the
// model produces plain text or the round limit is hit.
type Agent struct {
	appCfg   *config.AppConfig
	ai       AIProvider
	registry *tools.Registry
}

func NewAgent(appCfg *config.AppConfig, ai AIProvider, registry *tools.Registry) *Agent {
	return &Agent{
		appCfg:   appCfg,
		ai:       ai,
		registry: registry,
	}
}

// Run produces a reply for the given input against the session history.
// Tool-call exchanges stay local to the loop; callers persist only the
// user/assistant turn pair.
func (a *Agent) Run(ctx context.Context, history []core.Message, input string) (string, error) {
	logger := log.FromCtx(ctx)

	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, a.systemPrompt())
	messages = append(messages, history...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: input})

	defs := a.registry.Definitions()
	var finalContent string

	for round := 0; round <= a.appCfg.MaxToolRounds; round++ {
		responseMsg, err := a.ai.Chat(ctx, messages, defs)
		if err != nil {
			return "", fmt.Errorf("ai chat error: %w", err)
		}
		messages = append(messages, responseMsg)

		if responseMsg.Content != "" {
			finalContent = responseMsg.Content
		}

		if len(responseMsg.ToolCalls) == 0 {
			return finalContent, nil
		}

		for _, tc := range responseMsg.ToolCalls {
			logger.Info().Str("tool", tc.Function.Name).Msg("executing tool")

			result := a.registry.Call(ctx, tc.Function.Name, tc.Function.Arguments)
			messages = append(messages, core.Message{
				Role:       core.RoleTool,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	logger.Warn().Int("rounds", a.appCfg.MaxToolRounds).Msg("tool round limit reached")
	if finalContent == "" {
		return "", fmt.Errorf("no answer after %d tool rounds", a.appCfg.MaxToolRounds)
	}
	return finalContent, nil
}

func (a *Agent) systemPrompt() core.Message {
	content := defaultSystemPrompt
	if data, err := os.ReadFile(a.appCfg.GetSystemPromptPath()); err == nil && len(data) > 0 {
		content = string(data)
	}

	now := time.Now().In(a.appCfg.Location())
	content += "\n\nCurrent time: " + now.Format("Monday, 2 January 2006 15:04 MST")

	return core.Message{Role: core.RoleSystem, Content: content}
}
