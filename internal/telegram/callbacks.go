package telegram

import (
	"context"
	"strings"

	"github.com/Vovarama1992/edsource_bot/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handleCallback(_ context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := strings.TrimSpace(cb.Data)

	app.messenger.AnswerCallback(cb.ID)

	switch {
	case data == "menu":
		app.sessions.Reset(chatID, session.ModeMenu)
		app.messenger.SendMessage(chatID, "Меню:", MenuKeyboard())

	case strings.HasPrefix(data, "provider:"):
		name := strings.TrimPrefix(data, "provider:")
		if !app.gateway.Has(name) {
			return
		}
		app.sessions.SetProvider(chatID, name)
		app.messenger.SendMessage(chatID, "Модель переключена: "+name, MenuKeyboard())
	}
	// сюда легко добавлять новые callback-и по мере роста бота
}
