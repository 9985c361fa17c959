package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID,required,notEmpty"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN,required,notEmpty"`
	// Sender address, e.g. "whatsapp:+14155238886"
	From string `env:"TWILIO_WHATSAPP_FROM,required,notEmpty"`
	// Operator/owner address for reminders and digests
	OwnerTo string `env:"OWNER_WHATSAPP_TO,required,notEmpty"`
}

func NewTwilioConfig(ctx context.Context) *TwilioConfig {
	c := &TwilioConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Twilio config")
	}
	return c
}
