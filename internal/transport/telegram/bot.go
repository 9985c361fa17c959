package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/internal/service/agent"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Bot is the secondary transport: the owner can talk to the same assistant
// over Telegram, with its own session key per chat.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	agent    *agent.Agent
	sessions core.SessionRepository
	sender   *sender
	ownerID  int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	ag *agent.Agent,
	sessions core.SessionRepository,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		cfg:      cfg,
		agent:    ag,
		sessions: sessions,
		sender:   newSender(b),
		ownerID:  cfg.OwnerID,
	}

	// Carry the signal context with its logger into handlers
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionKey := fmt.Sprintf("telegram-%d", c.Chat().ID)
	input := c.Text()

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	history, err := b.sessions.History(ctx, sessionKey)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load session history")
		return c.Send("Sorry, something went wrong on my end.")
	}

	reply, err := b.agent.Run(ctx, history, input)
	if err != nil {
		logger.Error().Err(err).Msg("agent run failed")
		return c.Send("Sorry, something went wrong on my end.")
	}

	if err := b.sessions.AppendTurn(ctx, sessionKey, input, reply); err != nil {
		logger.Error().Err(err).Msg("failed to persist turn")
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}
