package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

type ReminderProcessor interface {
	ProcessDue(ctx context.Context, now time.Time) (int, error)
}

type DigestService interface {
	SendDaily(ctx context.Context) error
}

// TriggerHandler serves the endpoints an external scheduler (cron, cloud
// scheduler) hits to run periodic work.
type TriggerHandler struct {
	processor ReminderProcessor
	digest    DigestService
}

func NewTriggerHandler(processor ReminderProcessor, digest DigestService) *TriggerHandler {
	return &TriggerHandler{processor: processor, digest: digest}
}

func (h *TriggerHandler) HandleProcessReminders(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	processed, err := h.processor.ProcessDue(ctx, time.Now())
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("reminder scan failed")
		writeJSON(rw, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(rw, http.StatusOK, map[string]any{
		"success":   true,
		"processed": processed,
	})
}

func (h *TriggerHandler) HandleDailySummary(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	if err := h.digest.SendDaily(ctx); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("daily digest failed")
		writeJSON(rw, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(rw, http.StatusOK, map[string]any{
		"success": true,
		"message": "daily summary sent",
	})
}

// requireSecret guards the trigger endpoints with the shared secret, taken
// from the X-Trigger-Secret header or a "secret" query parameter.
func requireSecret(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			provided := req.Header.Get("X-Trigger-Secret")
			if provided == "" {
				provided = req.URL.Query().Get("secret")
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				log.FromCtx(req.Context()).Warn().Str("path", req.URL.Path).Msg("trigger secret mismatch")
				writeJSON(rw, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(rw, req)
		})
	}
}

func writeJSON(rw http.ResponseWriter, status int, payload any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(payload)
}
