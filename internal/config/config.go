package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config — все настройки сервиса. Заполняется один раз на старте из окружения.
type Config struct {
	Port          string
	WebhookSecret string

	TelegramToken string

	// какой провайдер LLM используем по умолчанию: zai | deepseek | openai | amvera
	ModelProvider string

	ZaiAPIKey string
	ZaiModel  string
	ZaiURL    string

	DeepseekAPIKey string
	DeepseekModel  string
	DeepseekURL    string

	OpenAIAPIKey string
	OpenAIModel  string

	AmveraToken string
	AmveraBase  string
	AmveraModel string

	// общий лимит одновременных запросов к LLM (семафор)
	LLMConcurrencyLimit int

	// антиспам: минимальный интервал между сообщениями одного чата
	PerChatCooldown time.Duration

	// жёсткий таймаут ожидания ответа модели
	ModelWatchdog time.Duration

	// пустое meta в батч-режиме: отправлять как есть или пропускать пару
	BatchAllowEmptyMeta bool
}

// Load читает окружение и валидирует обязательные переменные.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          envDefault("PORT", "8080"),
		WebhookSecret: envDefault("WEBHOOK_SECRET", "amagh743"),

		ModelProvider: envDefault("MODEL_PROVIDER", "zai"),

		ZaiModel: envDefault("Z_AI_MODEL", "glm-4.5-Flash"),
		ZaiURL:   envDefault("Z_AI_URL", "https://api.z.ai/api/paas/v4/chat/completions"),

		DeepseekModel: envDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		DeepseekURL:   envDefault("DEEPSEEK_URL", "https://api.deepseek.com/v1"),

		OpenAIModel: envDefault("OPENAI_MODEL", "gpt-4o-mini"),

		AmveraBase:  envDefault("AMVERA_BASE", "https://kong-proxy.yc.amvera.ru/api/v1"),
		AmveraModel: envDefault("AMVERA_MODEL", "llama8b"),

		LLMConcurrencyLimit: envInt("LLM_CONCURRENCY_LIMIT", 1),
		PerChatCooldown:     envSeconds("PER_CHAT_COOLDOWN", 0.7),
		ModelWatchdog:       envSeconds("MODEL_WATCHDOG_SECONDS", 25),
		BatchAllowEmptyMeta: envBool("BATCH_ALLOW_EMPTY_META", true),
	}

	var err error
	if cfg.TelegramToken, err = envRequired("TELEGRAM_TOKEN"); err != nil {
		return nil, err
	}

	cfg.ZaiAPIKey = strings.TrimSpace(os.Getenv("Z_AI_API_KEY"))
	cfg.DeepseekAPIKey = strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY"))
	cfg.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.AmveraToken = strings.TrimSpace(os.Getenv("AMVERA_TOKEN"))

	// ключ выбранного провайдера обязан присутствовать
	switch cfg.ModelProvider {
	case "zai":
		if cfg.ZaiAPIKey == "" {
			return nil, fmt.Errorf("Z_AI_API_KEY is required for provider %q", cfg.ModelProvider)
		}
	case "deepseek":
		if cfg.DeepseekAPIKey == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY is required for provider %q", cfg.ModelProvider)
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %q", cfg.ModelProvider)
		}
	case "amvera":
		if cfg.AmveraToken == "" {
			return nil, fmt.Errorf("AMVERA_TOKEN is required for provider %q", cfg.ModelProvider)
		}
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER: %q", cfg.ModelProvider)
	}

	if cfg.LLMConcurrencyLimit < 1 {
		return nil, fmt.Errorf("LLM_CONCURRENCY_LIMIT must be >= 1")
	}

	return cfg, nil
}

func envRequired(name string) (string, error) {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return "", fmt.Errorf("missing required environment variable: %s", name)
	}
	return val, nil
}

func envDefault(name, def string) string {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return def
	}
	return val
}

func envInt(name string, def int) int {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}

func envSeconds(name string, def float64) time.Duration {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return time.Duration(def * float64(time.Second))
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return time.Duration(def * float64(time.Second))
	}
	return time.Duration(f * float64(time.Second))
}

func envBool(name string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	if val == "" {
		return def
	}
	return val == "1" || val == "true" || val == "yes"
}
