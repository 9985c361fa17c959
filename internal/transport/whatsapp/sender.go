package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

const (
	defaultBaseURL = "https://api.twilio.com"

	// WhatsApp's hard cap is 1600; staying under it leaves room for the
	// transport's own metadata.
	maxMessageLength = 1500
)

// Sender delivers outbound text through the Twilio messaging API, splitting
// long replies into chunks the channel will accept.
type Sender struct {
	client  *http.Client
	baseURL string
	cfg     *config.TwilioConfig
}

func NewSender(cfg *config.TwilioConfig) *Sender {
	return &Sender{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		cfg:     cfg,
	}
}

// NewSenderWithBaseURL is used by tests to point at a stub server.
func NewSenderWithBaseURL(cfg *config.TwilioConfig, baseURL string) *Sender {
	s := NewSender(cfg)
	s.baseURL = baseURL
	return s
}

// Send delivers text to the given address, one API call per chunk, in
// order. The first failed chunk aborts the rest.
func (s *Sender) Send(ctx context.Context, to, text string) error {
	chunks := splitText(text, maxMessageLength)
	for i, chunk := range chunks {
		if err := s.sendOne(ctx, to, chunk); err != nil {
			return fmt.Errorf("send chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	log.FromCtx(ctx).Debug().Str("to", to).Int("chunks", len(chunks)).Msg("message sent")
	return nil
}

func (s *Sender) sendOne(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("From", s.cfg.From)
	form.Set("To", to)
	form.Set("Body", body)

	reqURL := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio API error %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// splitText breaks text into chunks of at most maxLength. Within each
// window it prefers a newline past the midpoint, then the last space, then
// a hard cut. The remainder is trimmed before the next pass, so chunks
// never start or end with stray whitespace.
func splitText(text string, maxLength int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for len(text) > maxLength {
		window := text[:maxLength]
		cut := maxLength

		if idx := strings.LastIndexByte(window, '\n'); idx >= maxLength/2 {
			cut = idx
		} else if idx := strings.LastIndexByte(window, ' '); idx > 0 {
			cut = idx
		}

		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
