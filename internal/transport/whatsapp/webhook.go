package whatsapp

import (
	"context"
	"net/http"

	"github.com/ottobonilla95/ai-assistant/internal/service/dispatcher"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

// Twilio expects a TwiML document in the webhook response; an empty one
// means "no synchronous reply", the actual answer goes out via the API.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// Webhook decodes Twilio's inbound message callbacks and hands them to the
// dispatcher. The HTTP response is sent before processing happens.
type Webhook struct {
	dispatcher *dispatcher.Dispatcher
}

func NewWebhook(d *dispatcher.Dispatcher) *Webhook {
	return &Webhook{dispatcher: d}
}

// HandleInbound acknowledges the callback immediately and processes the
// event in the background. Twilio retries on slow responses, so nothing
// here may wait on transcription or the model.
func (w *Webhook) HandleInbound(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := log.FromCtx(ctx)

	if err := req.ParseForm(); err != nil {
		logger.Warn().Err(err).Msg("malformed webhook payload")
		http.Error(rw, "bad request", http.StatusBadRequest)
		return
	}

	ev := dispatcher.Event{
		From: req.PostFormValue("From"),
		Body: req.PostFormValue("Body"),
	}
	if req.PostFormValue("NumMedia") != "" && req.PostFormValue("NumMedia") != "0" {
		ev.MediaURL = req.PostFormValue("MediaUrl0")
		ev.MediaContentType = req.PostFormValue("MediaContentType0")
	}

	logger.Info().Str("from", ev.From).Bool("media", ev.MediaURL != "").Msg("inbound message")

	// Detach from the request context: processing outlives this response.
	w.dispatcher.HandleAsync(context.WithoutCancel(ctx), ev)

	rw.Header().Set("Content-Type", "text/xml")
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte(emptyTwiML))
}

// HandleLiveness lets the channel's console verify the endpoint is up.
func (w *Webhook) HandleLiveness(rw http.ResponseWriter, req *http.Request) {
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte("ok"))
}
