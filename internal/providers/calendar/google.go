package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/pkg/retry"
)

const defaultBaseURL = "https://www.googleapis.com/calendar/v3/calendars"

// Event is the subset of a Google Calendar event the assistant cares about.
type Event struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Location string `json:"location,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
	AllDay   bool   `json:"allDay,omitempty"`
}

type EventInput struct {
	Summary  string `json:"summary"`
	Location string `json:"location,omitempty"`
	Start    string `json:"start"` // RFC3339 datetime
	End      string `json:"end"`   // RFC3339 datetime
	TimeZone string `json:"timeZone,omitempty"`
}

type Client struct {
	client  *http.Client
	retrier *retry.Retrier
	baseURL string
	cfg     *config.CalendarConfig
}

func NewClient(cfg *config.CalendarConfig) *Client {
	return &Client{
		client:  &http.Client{Timeout: 20 * time.Second},
		retrier: retry.NewDefaultRetrier(),
		baseURL: defaultBaseURL,
		cfg:     cfg,
	}
}

func NewClientWithBaseURL(cfg *config.CalendarConfig, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = baseURL
	return c
}

// ListEvents returns single events in [timeMin, timeMax) ordered by start time.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int) ([]Event, error) {
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}

	params := url.Values{}
	params.Set("timeMin", timeMin.Format(time.RFC3339))
	params.Set("timeMax", timeMax.Format(time.RFC3339))
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")

	reqURL := fmt.Sprintf("%s/%s/events?%s", c.baseURL, url.PathEscape(c.cfg.CalendarID), params.Encode())

	var events []Event
	err := c.retrier.Do(ctx, func() error {
		body, err := c.do(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}

		var result struct {
			Items []gcalEvent `json:"items"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}

		events = events[:0]
		for _, item := range result.Items {
			events = append(events, item.toEvent())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// CreateEvent inserts a new event into the configured calendar.
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*Event, error) {
	payload := map[string]any{
		"summary": in.Summary,
		"start":   gcalTime(in.Start, in.TimeZone),
		"end":     gcalTime(in.End, in.TimeZone),
	}
	if in.Location != "" {
		payload["location"] = in.Location
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/events", c.baseURL, url.PathEscape(c.cfg.CalendarID))
	body, err := c.do(ctx, http.MethodPost, reqURL, data)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	var item gcalEvent
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	ev := item.toEvent()
	return &ev, nil
}

func (c *Client) do(ctx context.Context, method, reqURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("calendar API error %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}
	return respBody, nil
}

type gcalEvent struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Location string `json:"location"`
	Start    struct {
		DateTime string `json:"dateTime"`
		Date     string `json:"date"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
		Date     string `json:"date"`
	} `json:"end"`
}

func (g gcalEvent) toEvent() Event {
	ev := Event{
		ID:       g.ID,
		Summary:  g.Summary,
		Location: g.Location,
		Start:    g.Start.DateTime,
		End:      g.End.DateTime,
	}
	if ev.Start == "" && g.Start.Date != "" {
		ev.Start = g.Start.Date
		ev.End = g.End.Date
		ev.AllDay = true
	}
	return ev
}

func gcalTime(value, tz string) map[string]string {
	field := map[string]string{"dateTime": value}
	if tz != "" {
		field["timeZone"] = tz
	}
	return field
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
