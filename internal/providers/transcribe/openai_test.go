package transcribe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriber_Transcribe(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/ogg")
		w.Write([]byte("OggS fake audio bytes"))
	}))
	defer media.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "voice.ogg", header.Filename)

		fmt.Fprint(w, `{"text":"remind me to call mom"}`)
	}))
	defer api.Close()

	tr := NewWithBaseURL(api.URL, "key", "whisper-1")

	text, err := tr.Transcribe(context.Background(), media.URL, "audio/ogg")
	require.NoError(t, err)
	assert.Equal(t, "remind me to call mom", text)
}

func TestTranscriber_MediaFetchFailure(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer media.Close()

	tr := NewWithBaseURL("http://unused.invalid", "key", "whisper-1")

	_, err := tr.Transcribe(context.Background(), media.URL, "audio/ogg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download media")
}

func TestTranscriber_EmptyResultIsError(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio"))
	}))
	defer media.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"text":"   "}`)
	}))
	defer api.Close()

	tr := NewWithBaseURL(api.URL, "key", "whisper-1")

	_, err := tr.Transcribe(context.Background(), media.URL, "audio/ogg")
	require.Error(t, err)
}

func TestFilenameFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"audio/ogg; codecs=opus", "voice.ogg"},
		{"audio/mpeg", "voice.mp3"},
		{"audio/mp3", "voice.mp3"},
		{"audio/wav", "voice.wav"},
		{"application/octet-stream", "voice.ogg"},
	}
	for _, tt := range tests {
		if got := filenameFor(tt.contentType); got != tt.want {
			t.Errorf("filenameFor(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}
