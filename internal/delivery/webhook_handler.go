package delivery

import (
	"context"
	"io"
	"net/http"

	"github.com/Vovarama1992/edsource_bot/internal/telegram"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// WebhookHandler принимает апдейты Telegram. Ответ всегда уходит сразу:
// обработка запускается в фоне, чтобы Telegram не ретраил доставку.
type WebhookHandler struct {
	app    *telegram.BotApp
	secret string
	log    *logger.ZapLogger
}

func NewWebhookHandler(app *telegram.BotApp, secret string, log *logger.ZapLogger) *WebhookHandler {
	return &WebhookHandler{app: app, secret: secret, log: log}
}

// POST /webhook/{secret}
func (h *WebhookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "secret") != h.secret {
		writeJSON(w, map[string]any{"ok": false, "error": "forbidden"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, map[string]any{"ok": true})
		return
	}

	var upd tgbotapi.Update
	if err := json.Unmarshal(body, &upd); err != nil {
		// битый апдейт подтверждаем как no-op, иначе Telegram будет ретраить
		h.log.Log(logger.LogEntry{Level: "warn", Message: "webhook: invalid update json", Error: err})
		writeJSON(w, map[string]any{"ok": true})
		return
	}

	h.app.Spawn(func() {
		h.app.Route(context.Background(), &upd)
	})

	writeJSON(w, map[string]any{"ok": true})
}

// GET /webhook/{secret} — проверка, что секрет в URL верный.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ok": chi.URLParam(r, "secret") == h.secret})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
