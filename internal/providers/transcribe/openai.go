package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

const (
	defaultBaseURL = "https://api.openai.com"
	maxMediaSize   = 16 << 20 // 16MB, WhatsApp voice notes stay well under this
)

// Transcriber downloads a voice note from the channel's media store and
// sends it to the transcription API.
type Transcriber struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	model     string
	mediaUser string
	mediaPass string
}

func New(openAICfg *config.OpenAIConfig, twilioCfg *config.TwilioConfig) *Transcriber {
	return &Transcriber{
		client:    &http.Client{Timeout: 60 * time.Second},
		baseURL:   defaultBaseURL,
		apiKey:    openAICfg.APIKey,
		model:     openAICfg.TranscribeModel,
		mediaUser: twilioCfg.AccountSID,
		mediaPass: twilioCfg.AuthToken,
	}
}

// NewWithBaseURL is used by tests to point at a stub server.
func NewWithBaseURL(baseURL, apiKey, model string) *Transcriber {
	return &Transcriber{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, mediaURL, contentType string) (string, error) {
	audio, err := t.download(ctx, mediaURL)
	if err != nil {
		return "", fmt.Errorf("download media: %w", err)
	}

	text, err := t.transcribe(ctx, audio, filenameFor(contentType))
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	log.FromCtx(ctx).Debug().Int("bytes", len(audio)).Msg("transcribed voice note")
	return text, nil
}

func (t *Transcriber) download(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, err
	}
	// Twilio media URLs require account credentials
	if t.mediaUser != "" {
		req.SetBasicAuth(t.mediaUser, t.mediaPass)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media fetch returned status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxMediaSize))
}

func (t *Transcriber) transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", t.model); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/audio/transcriptions", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return "", fmt.Errorf("empty transcription result")
	}
	return result.Text, nil
}

func filenameFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "ogg"):
		return "voice.ogg"
	case strings.Contains(contentType, "mpeg"), strings.Contains(contentType, "mp3"):
		return "voice.mp3"
	case strings.Contains(contentType, "wav"):
		return "voice.wav"
	default:
		return "voice.ogg"
	}
}
