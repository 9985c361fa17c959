package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.CalendarConfig {
	return &config.CalendarConfig{
		CalendarID:  "primary",
		AccessToken: "tok",
		MaxResults:  10,
	}
}

func TestClient_ListEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/primary/events", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		assert.Equal(t, "startTime", r.URL.Query().Get("orderBy"))

		fmt.Fprint(w, `{"items":[
			{"id":"1","summary":"Standup","start":{"dateTime":"2026-08-31T09:30:00Z"},"end":{"dateTime":"2026-08-31T09:45:00Z"}},
			{"id":"2","summary":"Holiday","start":{"date":"2026-08-31"},"end":{"date":"2026-09-01"}}
		]}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testConfig(), server.URL)

	from := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	events, err := client.ListEvents(context.Background(), from, from.Add(24*time.Hour), 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Standup", events[0].Summary)
	assert.Equal(t, "2026-08-31T09:30:00Z", events[0].Start)
	assert.False(t, events[0].AllDay)

	assert.Equal(t, "Holiday", events[1].Summary)
	assert.Equal(t, "2026-08-31", events[1].Start)
	assert.True(t, events[1].AllDay)
}

func TestClient_CreateEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/primary/events", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Dentist", payload["summary"])

		start, ok := payload["start"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "2026-09-01T14:00:00Z", start["dateTime"])

		fmt.Fprint(w, `{"id":"new1","summary":"Dentist",
			"start":{"dateTime":"2026-09-01T14:00:00Z"},
			"end":{"dateTime":"2026-09-01T15:00:00Z"}}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testConfig(), server.URL)

	ev, err := client.CreateEvent(context.Background(), EventInput{
		Summary: "Dentist",
		Start:   "2026-09-01T14:00:00Z",
		End:     "2026-09-01T15:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "new1", ev.ID)
	assert.Equal(t, "Dentist", ev.Summary)
}

func TestClient_CreateEventAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"insufficient permissions"}}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testConfig(), server.URL)

	_, err := client.CreateEvent(context.Background(), EventInput{
		Summary: "x", Start: "2026-09-01T14:00:00Z", End: "2026-09-01T15:00:00Z",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
