package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ASSISTANT_RUNTIME_PATH" envDefault:".assistant"`

	// Persistence backend: "memory" (volatile) or "sqlite"
	Persistence string `env:"PERSISTENCE" envDefault:"memory"`

	// Transport flags
	EnableTelegram bool   `env:"ENABLE_TELEGRAM" envDefault:"false"`
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8080"`

	// Context management
	HistoryLimit  int `env:"HISTORY_LIMIT" envDefault:"20"`
	MaxToolRounds int `env:"MAX_TOOL_ROUNDS" envDefault:"5"`

	// Default time zone for schedule parsing and digests (IANA name)
	TimeZone string `env:"DEFAULT_TIMEZONE" envDefault:"UTC"`

	// Interval for the built-in reminder ticker; 0 disables it and leaves
	// delivery to the external trigger endpoint.
	ReminderTick time.Duration `env:"REMINDER_TICK" envDefault:"0"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "assistant.db")
}

func (c AppConfig) GetSystemPromptPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
