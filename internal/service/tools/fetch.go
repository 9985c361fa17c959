package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inbucket/html2text"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/pkg/retry"
)

const (
	maxResponseSize     = 1 << 20 // 1MB limit
	defaultFetchTimeout = 15 * time.Second
)

const openPageSchema = `
{
  "type": "object",
  "properties": {
    "url": { "type": "string", "description": "The URL to open" }
  },
  "required": ["url"]
}
`

type fetchTool struct {
	client  *http.Client
	retrier *retry.Retrier
}

// RegisterFetchTools exposes page fetching, with HTML converted to
// readable text before it reaches the model.
func RegisterFetchTools(reg *Registry) {
	t := &fetchTool{
		client: &http.Client{
			Timeout: defaultFetchTimeout,
		},
		retrier: retry.NewDefaultRetrier(),
	}
	reg.Register("open_page",
		"Open a web page and return its content as plain text",
		json.RawMessage(openPageSchema), t.openPage)
}

func (t *fetchTool) openPage(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if input.URL == "" {
		return "", fmt.Errorf("url is required")
	}

	var body string
	err := t.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", core.AppUserAgent)

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		limitedReader := io.LimitReader(resp.Body, maxResponseSize)

		body, err = html2text.FromReader(limitedReader, html2text.Options{
			OmitLinks:    false,
			PrettyTables: true,
		})
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return body, nil
}
