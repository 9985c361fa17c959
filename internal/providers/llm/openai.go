package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/core"
)

const defaultBaseURL = "https://api.openai.com"

// OpenAI talks to the chat-completions API with function tools enabled.
type OpenAI struct {
	baseProvider
}

func NewOpenAI(cfg *config.OpenAIConfig) *OpenAI {
	return &OpenAI{
		baseProvider: newBaseProvider(defaultBaseURL, cfg.APIKey, cfg.Model),
	}
}

// NewOpenAIWithBaseURL exists for OpenAI-compatible endpoints and tests.
func NewOpenAIWithBaseURL(baseURL, apiKey, model string) *OpenAI {
	return &OpenAI{
		baseProvider: newBaseProvider(baseURL, apiKey, model),
	}
}

type chatRequest struct {
	Model      string         `json:"model"`
	Messages   []core.Message `json:"messages"`
	Tools      []core.Tool    `json:"tools,omitempty"`
	ToolChoice string         `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message core.Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (o *OpenAI) Chat(ctx context.Context, messages []core.Message, tools []core.Tool) (core.Message, error) {
	reqBody := chatRequest{
		Model:    o.model,
		Messages: messages,
		Tools:    tools,
	}
	if len(tools) > 0 {
		reqBody.ToolChoice = "auto"
	}

	headers := map[string]string{
		"Authorization": "Bearer " + o.apiKey,
		"User-Agent":    core.AppUserAgent,
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", reqBody, headers)
	if err != nil {
		return core.Message{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return core.Message{}, fmt.Errorf("api returned status %d: %s", resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return core.Message{}, fmt.Errorf("decode: %w", err)
	}
	if result.Error != nil {
		return core.Message{}, fmt.Errorf("api error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return core.Message{}, fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message, nil
}
