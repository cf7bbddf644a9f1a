package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/edsource_bot/internal/ai"
	"github.com/Vovarama1992/edsource_bot/internal/config"
	"github.com/Vovarama1992/edsource_bot/internal/delivery"
	"github.com/Vovarama1992/edsource_bot/internal/ratelimit"
	"github.com/Vovarama1992/edsource_bot/internal/session"
	"github.com/Vovarama1992/edsource_bot/internal/telegram"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// TELEGRAM BOT
	// =========================================================================

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("failed to init telegram bot: %v", err)
	}
	log.Printf("[main] bot ready: @%s", bot.Self.UserName)

	messenger := telegram.NewBotMessenger(bot)

	// =========================================================================
	// LLM GATEWAY
	// =========================================================================

	var providers []ai.Provider
	if cfg.ZaiAPIKey != "" {
		providers = append(providers, ai.NewZaiClient(cfg.ZaiAPIKey, cfg.ZaiModel, cfg.ZaiURL))
	}
	if cfg.DeepseekAPIKey != "" {
		providers = append(providers, ai.NewDeepseekClient(cfg.DeepseekAPIKey, cfg.DeepseekModel, cfg.DeepseekURL))
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel))
	}
	if cfg.AmveraToken != "" {
		providers = append(providers, ai.NewAmveraClient(cfg.AmveraToken, cfg.AmveraModel, cfg.AmveraBase))
	}

	gateway := ai.NewGateway(cfg.ModelProvider, cfg.LLMConcurrencyLimit, providers...)

	// =========================================================================
	// BOT APP
	// =========================================================================

	sessions := session.NewStore()
	limiter := ratelimit.New(cfg.PerChatCooldown)

	botApp := telegram.NewBotApp(
		messenger,
		sessions,
		limiter,
		gateway,
		cfg.ModelWatchdog,
		cfg.BatchAllowEmptyMeta,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(httprate.LimitByIP(300, time.Minute))

	webhookHandler := delivery.NewWebhookHandler(botApp, cfg.WebhookSecret, zl)
	delivery.RegisterRoutes(r, webhookHandler, delivery.ServiceInfo{
		Service:          "edsource-bot",
		Model:            cfg.ModelProvider,
		ConcurrencyLimit: cfg.LLMConcurrencyLimit,
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "edsource-bot",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
