package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/res/v1/web/search", r.URL.Path)
		require.Equal(t, "brave-key", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "best tapas madrid", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("count"))

		fmt.Fprint(w, `{"web":{"results":[
			{"title":"Tapas guide","url":"https://example.com/tapas","description":"the best spots"}
		]}}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(&config.SearchConfig{BraveAPIKey: "brave-key", MaxResults: 5}, server.URL)

	results, err := client.Search(context.Background(), "best tapas madrid", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tapas guide", results[0].Title)
	assert.Equal(t, "https://example.com/tapas", results[0].URL)
}

func TestClient_SearchDefaultCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		fmt.Fprint(w, `{"web":{"results":[]}}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(&config.SearchConfig{BraveAPIKey: "k", MaxResults: 5}, server.URL)

	_, err := client.Search(context.Background(), "anything", 0)
	require.NoError(t, err)
}
