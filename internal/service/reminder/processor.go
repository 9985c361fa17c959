package reminder

import (
	"context"
	"time"

	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

// Sender is the outbound delivery gateway for fired reminders.
type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Processor drives the due-item scan path: find due reminders, deliver
// them to the owner, mark them delivered.
type Processor struct {
	svc     *Service
	sender  Sender
	ownerTo string
}

func NewProcessor(svc *Service, sender Sender, ownerTo string) *Processor {
	return &Processor{svc: svc, sender: sender, ownerTo: ownerTo}
}

// ProcessDue delivers every reminder due at 'now' and returns how many
// were delivered. A failed send leaves the item undelivered so the next
// scan picks it up again (at-least-once).
func (p *Processor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	logger := log.FromCtx(ctx)

	due, err := p.svc.Due(ctx, now)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, rem := range due {
		if err := p.sender.Send(ctx, p.ownerTo, "Reminder: "+rem.Body); err != nil {
			logger.Error().Err(err).Str("id", rem.ID).Msg("reminder delivery failed")
			continue
		}
		if err := p.svc.MarkDelivered(ctx, rem.ID); err != nil {
			logger.Error().Err(err).Str("id", rem.ID).Msg("failed to mark reminder delivered")
			continue
		}
		logger.Info().Str("id", rem.ID).Msg("reminder delivered")
		processed++
	}
	return processed, nil
}
