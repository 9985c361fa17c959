package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ottobonilla95/ai-assistant/internal/providers/search"
)

const webSearchSchema = `
{
  "type": "object",
  "properties": {
    "query": { "type": "string", "description": "The search query" },
    "count": { "type": "integer", "description": "Number of results to return" }
  },
  "required": ["query"]
}
`

// Searcher is the slice of the search provider the tool needs.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]search.Result, error)
}

type searchTools struct {
	client Searcher
}

// RegisterSearchTools is only called when a search API key is configured.
func RegisterSearchTools(reg *Registry, client Searcher) {
	t := &searchTools{client: client}
	reg.Register("web_search",
		"Search the web and return titles, URLs and snippets",
		json.RawMessage(webSearchSchema), t.search)
}

func (t *searchTools) search(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Query string `json:"query"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if input.Query == "" {
		return "", fmt.Errorf("query is required")
	}

	results, err := t.client.Search(ctx, input.Query, input.Count)
	if err != nil {
		return "", err
	}
	if results == nil {
		results = []search.Result{}
	}

	out, _ := json.Marshal(map[string]any{
		"success": true,
		"results": results,
		"count":   len(results),
	})
	return string(out), nil
}
