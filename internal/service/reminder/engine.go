package reminder

import (
	"context"
	"time"

	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

// Engine is an optional in-process ticker that runs the due-item scan on
// an interval, for deployments without an external cron hitting the
// trigger endpoint.
type Engine struct {
	processor *Processor
	interval  time.Duration
	stopCh    chan struct{}
}

func NewEngine(processor *Processor, interval time.Duration) *Engine {
	return &Engine{
		processor: processor,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

func (e *Engine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", e.interval).Msg("reminder engine started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.stopCh:
			return nil
		case <-ticker.C:
			if _, err := e.processor.ProcessDue(ctx, time.Now()); err != nil {
				logger.Error().Err(err).Msg("reminder scan failed")
			}
		}
	}
}

func (e *Engine) Shutdown(ctx context.Context) error {
	close(e.stopCh)
	return nil
}
