package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/pkg/retry"
)

const defaultBaseURL = "https://api.search.brave.com"

type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type Client struct {
	client  *http.Client
	retrier *retry.Retrier
	baseURL string
	apiKey  string
	count   int
}

func NewClient(cfg *config.SearchConfig) *Client {
	return &Client{
		client:  &http.Client{Timeout: 15 * time.Second},
		retrier: retry.NewDefaultRetrier(),
		baseURL: defaultBaseURL,
		apiKey:  cfg.BraveAPIKey,
		count:   cfg.MaxResults,
	}
}

func NewClientWithBaseURL(cfg *config.SearchConfig, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = baseURL
	return c
}

func (c *Client) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if count <= 0 {
		count = c.count
	}

	reqURL := fmt.Sprintf("%s/res/v1/web/search?q=%s&count=%d",
		c.baseURL, url.QueryEscape(query), count)

	var results []Result
	err := c.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Subscription-Token", c.apiKey)
		req.Header.Set("User-Agent", core.AppUserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("search API error %d: %s", resp.StatusCode, string(body))
		}

		var parsed struct {
			Web struct {
				Results []Result `json:"results"`
			} `json:"web"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}

		results = parsed.Web.Results
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}
	return results, nil
}
