package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

// SearchConfig is optional: an empty key disables the web_search tool
// instead of failing startup.
type SearchConfig struct {
	BraveAPIKey string `env:"BRAVE_API_KEY"`
	MaxResults  int    `env:"SEARCH_MAX_RESULTS" envDefault:"5"`
}

func NewSearchConfig(ctx context.Context) *SearchConfig {
	c := &SearchConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Search config")
	}
	return c
}

func (c SearchConfig) Enabled() bool {
	return c.BraveAPIKey != ""
}
