package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/ottobonilla95/ai-assistant/internal/config"
	"github.com/ottobonilla95/ai-assistant/internal/core"
	"github.com/ottobonilla95/ai-assistant/internal/providers/calendar"
	"github.com/ottobonilla95/ai-assistant/internal/providers/llm"
	"github.com/ottobonilla95/ai-assistant/internal/providers/search"
	"github.com/ottobonilla95/ai-assistant/internal/providers/transcribe"
	"github.com/ottobonilla95/ai-assistant/internal/service/agent"
	"github.com/ottobonilla95/ai-assistant/internal/service/digest"
	"github.com/ottobonilla95/ai-assistant/internal/service/dispatcher"
	"github.com/ottobonilla95/ai-assistant/internal/service/reminder"
	"github.com/ottobonilla95/ai-assistant/internal/service/tools"
	"github.com/ottobonilla95/ai-assistant/internal/storage/memory"
	"github.com/ottobonilla95/ai-assistant/internal/storage/sqlite"
	"github.com/ottobonilla95/ai-assistant/internal/transport/httpapi"
	"github.com/ottobonilla95/ai-assistant/internal/transport/telegram"
	"github.com/ottobonilla95/ai-assistant/internal/transport/whatsapp"
	"github.com/ottobonilla95/ai-assistant/pkg/log"
	"github.com/ottobonilla95/ai-assistant/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	appCfg := config.NewAppConfig(ctx)
	if err := initEnv(ctx, appCfg.RuntimePath); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}
	// re-parse after .env is loaded
	appCfg = config.NewAppConfig(ctx)

	twilioCfg := config.NewTwilioConfig(ctx)
	openAICfg := config.NewOpenAIConfig(ctx)
	calendarCfg := config.NewCalendarConfig(ctx)
	searchCfg := config.NewSearchConfig(ctx)
	triggerCfg := config.NewTriggerConfig(ctx)

	loc := appCfg.Location()

	// Storage
	reminders, sessions, notes, cleanup := initStorage(ctx, appCfg)
	if cleanup != nil {
		services = append(services, cleanup)
	}

	// Providers
	aiProvider := llm.NewOpenAI(openAICfg)
	transcriber := transcribe.New(openAICfg, twilioCfg)
	calClient := calendar.NewClient(calendarCfg)

	// Outbound gateway
	waSender := whatsapp.NewSender(twilioCfg)

	// Reminders
	reminderSvc := reminder.NewService(reminders, loc)
	processor := reminder.NewProcessor(reminderSvc, waSender, twilioCfg.OwnerTo)
	if appCfg.ReminderTick > 0 {
		services = append(services, reminder.NewEngine(processor, appCfg.ReminderTick))
	}

	// Tools
	registry := tools.NewRegistry()
	tools.RegisterReminderTools(registry, reminderSvc)
	tools.RegisterCalendarTools(registry, calClient, loc)
	tools.RegisterNoteTools(registry, notes)
	tools.RegisterFetchTools(registry)
	if searchCfg.Enabled() {
		tools.RegisterSearchTools(registry, search.NewClient(searchCfg))
	} else {
		logger.Info().Msg("no search API key, web_search disabled")
	}

	// Agent & dispatcher
	ag := agent.NewAgent(appCfg, aiProvider, registry)
	disp := dispatcher.New(sessions, transcriber, ag, waSender)

	// Digest
	digestSvc := digest.NewService(calClient, waSender, twilioCfg.OwnerTo, loc)

	// HTTP API: webhook + trigger endpoints
	webhook := whatsapp.NewWebhook(disp)
	triggers := httpapi.NewTriggerHandler(processor, digestSvc)
	services = append(services, httpapi.NewServer(appCfg, triggerCfg, webhook, triggers))

	// Optional Telegram transport
	if appCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, ag, sessions)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (core.ReminderRepository, core.SessionRepository, core.NoteRepository, srv.Service) {
	logger := log.FromCtx(ctx)

	switch cfg.Persistence {
	case "sqlite":
		if err := os.MkdirAll(cfg.RuntimePath, 0o755); err != nil {
			logger.Fatal().Err(err).Msg("failed to create runtime dir")
		}
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open database")
		}
		return sqlite.NewReminderRepo(db),
			sqlite.NewSessionRepo(db, cfg.HistoryLimit),
			sqlite.NewNoteRepo(db),
			srv.NewCleanup(db.Close)

	case "memory":
		return memory.NewReminderRepo(),
			memory.NewSessionRepo(cfg.HistoryLimit),
			memory.NewNoteRepo(),
			nil

	default:
		logger.Fatal().Str("persistence", cfg.Persistence).Msg("unknown persistence backend")
		return nil, nil, nil, nil
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
