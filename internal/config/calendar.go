package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

type CalendarConfig struct {
	CalendarID  string `env:"GOOGLE_CALENDAR_ID" envDefault:"primary"`
	AccessToken string `env:"GOOGLE_CALENDAR_TOKEN,required,notEmpty"`
	MaxResults  int    `env:"GOOGLE_CALENDAR_MAX_RESULTS" envDefault:"10"`
}

func NewCalendarConfig(ctx context.Context) *CalendarConfig {
	c := &CalendarConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Calendar config")
	}
	return c
}
