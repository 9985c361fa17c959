package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/transport/whatsapp"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

// Server hosts the channel webhook and the externally-triggered endpoints
// (reminder scan, daily digest).
type Server struct {
	httpServer *http.Server
}

func NewServer(
	appCfg *config.AppConfig,
	triggerCfg *config.TriggerConfig,
	webhook *whatsapp.Webhook,
	triggers *TriggerHandler,
) *Server {
	r := mux.NewRouter()

	r.HandleFunc("/webhook", webhook.HandleInbound).Methods(http.MethodPost)
	r.HandleFunc("/webhook", webhook.HandleLiveness).Methods(http.MethodGet)

	t := r.PathPrefix("/triggers").Subrouter()
	t.Use(requireSecret(triggerCfg.Secret))
	// Both verbs: plain cron curl jobs default to GET
	t.HandleFunc("/reminders", triggers.HandleProcessReminders).Methods(http.MethodGet, http.MethodPost)
	t.HandleFunc("/daily-summary", triggers.HandleDailySummary).Methods(http.MethodGet, http.MethodPost)

	return &Server{
		httpServer: &http.Server{
			Addr:              appCfg.HTTPAddr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	// Propagate the logger into request contexts.
	s.httpServer.BaseContext = func(net.Listener) context.Context { return ctx }

	log.FromCtx(ctx).Info().Str("addr", s.httpServer.Addr).Msg("http server started")
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
