package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/internal/service/dispatcher"
	"github.com/ottobonilla95/ai-assistant/internal/service/reminder"
	"github.com/ottobonilla95/ai-assistant/internal/storage/memory"
	"github.com/ottobonilla95/ai-assistant/internal/transport/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSender struct {
	mu   sync.Mutex
	sent []string
}

func (m *memSender) Send(ctx context.Context, to, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, text)
	return nil
}

func (m *memSender) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type noopTranscriber struct{}

func (noopTranscriber) Transcribe(ctx context.Context, mediaURL, contentType string) (string, error) {
	return "", nil
}

type echoRunner struct{}

func (echoRunner) Run(ctx context.Context, history []core.Message, input string) (string, error) {
	return "ack: " + input, nil
}

type noopDigest struct{ calls int }

func (d *noopDigest) SendDaily(ctx context.Context) error {
	d.calls++
	return nil
}

type fixture struct {
	handler http.Handler
	repo    *memory.ReminderRepo
	svc     *reminder.Service
	sender  *memSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := memory.NewReminderRepo()
	svc := reminder.NewService(repo, time.UTC)
	sender := &memSender{}
	proc := reminder.NewProcessor(svc, sender, "whatsapp:+1555")

	sessions := memory.NewSessionRepo(20)
	disp := dispatcher.New(sessions, noopTranscriber{}, echoRunner{}, sender)

	server := NewServer(
		&config.AppConfig{HTTPAddr: ":0"},
		&config.TriggerConfig{Secret: "s3cret"},
		whatsapp.NewWebhook(disp),
		NewTriggerHandler(proc, &noopDigest{}),
	)

	return &fixture{
		handler: server.httpServer.Handler,
		repo:    repo,
		svc:     svc,
		sender:  sender,
	}
}

func TestTriggers_WrongSecretUnauthorized(t *testing.T) {
	f := newFixture(t)

	// A due reminder that must stay untouched
	_, err := f.svc.Create(context.Background(), "call mom", reminder.Schedule{DelayMinutes: 1})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/triggers/reminders", nil)
	req.Header.Set("X-Trigger-Secret", "wrong")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	// No side effects
	assert.Equal(t, 0, f.sender.count())
	pending, _ := f.repo.Pending(context.Background())
	assert.Len(t, pending, 1)
}

func TestTriggers_MissingSecretUnauthorized(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/triggers/daily-summary", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTriggers_ProcessRemindersCountsThenZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Store an already-due item directly to avoid waiting on the clock
	require.NoError(t, f.repo.Put(ctx, core.Reminder{
		ID:    "rem_x",
		Body:  "call mom",
		DueAt: time.Now().Add(-time.Minute),
	}))

	req := httptest.NewRequest(http.MethodPost, "/triggers/reminders", nil)
	req.Header.Set("X-Trigger-Secret", "s3cret")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"processed":1}`, rec.Body.String())
	assert.Equal(t, 1, f.sender.count())

	// Second invocation finds nothing
	req = httptest.NewRequest(http.MethodPost, "/triggers/reminders", nil)
	req.Header.Set("X-Trigger-Secret", "s3cret")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"processed":0}`, rec.Body.String())
}

func TestTriggers_SecretViaQueryParam(t *testing.T) {
	f := newFixture(t)

	// Cron-style GET with the secret in the query string
	req := httptest.NewRequest(http.MethodGet, "/triggers/reminders?secret=s3cret", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTriggers_DailySummary(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/triggers/daily-summary", nil)
	req.Header.Set("X-Trigger-Secret", "s3cret")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"daily summary sent"}`, rec.Body.String())
}

func TestWebhook_ImmediateTwiMLAck(t *testing.T) {
	f := newFixture(t)

	form := "From=whatsapp%3A%2B1555&Body=hello"
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<Response></Response>")
}

func TestWebhook_Liveness(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
