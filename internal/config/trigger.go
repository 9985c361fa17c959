package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

type TriggerConfig struct {
	// Shared secret for the /triggers/* endpoints
	Secret string `env:"TRIGGER_SECRET,required,notEmpty"`
}

func NewTriggerConfig(ctx context.Context) *TriggerConfig {
	c := &TriggerConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Trigger config")
	}
	return c
}
