package dispatcher

import (
	"context"
	"strings"

	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

// User-facing fallbacks. Kept fixed so failures never leak internals.
const (
	apologyTranscribe = "Sorry, I couldn't understand that audio message. Could you type it instead?"
	apologyEmpty      = "Sorry, I didn't catch that. Could you say it again?"
	apologyGeneric    = "Sorry, something went wrong on my end. Please try again in a moment."
)

// Event is one inbound message from the channel, already decoded from the
// transport's wire format.
type Event struct {
	From             string
	Body             string
	MediaURL         string
	MediaContentType string
}

type Transcriber interface {
	Transcribe(ctx context.Context, mediaURL, contentType string) (string, error)
}

type Runner interface {
	Run(ctx context.Context, history []core.Message, input string) (string, error)
}

type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Dispatcher drives one inbound event through its stages: resolve the text
// (transcribing audio if needed), run the reasoning loop against session
// history, persist the turn, deliver the reply. Each stage failure ends the
// event with a fixed apology; nothing propagates back to the transport.
type Dispatcher struct {
	sessions    core.SessionRepository
	transcriber Transcriber
	runner      Runner
	sender      Sender
}

func New(sessions core.SessionRepository, transcriber Transcriber, runner Runner, sender Sender) *Dispatcher {
	return &Dispatcher{
		sessions:    sessions,
		transcriber: transcriber,
		runner:      runner,
		sender:      sender,
	}
}

// HandleAsync processes the event on its own goroutine. The caller has
// already acknowledged the transport by the time this runs.
func (d *Dispatcher) HandleAsync(ctx context.Context, ev Event) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.FromCtx(ctx).Error().Any("panic", r).Msg("dispatcher panicked")
				d.apologize(ctx, ev.From, apologyGeneric)
			}
		}()
		d.Handle(ctx, ev)
	}()
}

func (d *Dispatcher) Handle(ctx context.Context, ev Event) {
	logger := log.FromCtx(ctx)

	text := strings.TrimSpace(ev.Body)
	if ev.MediaURL != "" {
		transcript, err := d.transcriber.Transcribe(ctx, ev.MediaURL, ev.MediaContentType)
		if err != nil {
			logger.Error().Err(err).Msg("transcription failed")
			d.apologize(ctx, ev.From, apologyTranscribe)
			return
		}
		text = strings.TrimSpace(transcript)
	}

	if text == "" {
		d.apologize(ctx, ev.From, apologyEmpty)
		return
	}

	history, err := d.sessions.History(ctx, ev.From)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load session history")
		d.apologize(ctx, ev.From, apologyGeneric)
		return
	}

	reply, err := d.runner.Run(ctx, history, text)
	if err != nil {
		logger.Error().Err(err).Msg("reasoning failed")
		d.apologize(ctx, ev.From, apologyGeneric)
		return
	}

	if err := d.sessions.AppendTurn(ctx, ev.From, text, reply); err != nil {
		logger.Error().Err(err).Msg("failed to persist turn")
		d.apologize(ctx, ev.From, apologyGeneric)
		return
	}

	if err := d.sender.Send(ctx, ev.From, reply); err != nil {
		logger.Error().Err(err).Msg("reply delivery failed")
		d.apologize(ctx, ev.From, apologyGeneric)
		return
	}

	logger.Info().Str("from", ev.From).Msg("event processed")
}

// apologize is best-effort: a failed apology is logged and dropped.
func (d *Dispatcher) apologize(ctx context.Context, to, msg string) {
	if err := d.sender.Send(ctx, to, msg); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to send apology")
	}
}
