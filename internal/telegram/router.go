package telegram

import (
	"context"
	"strings"

	"github.com/Vovarama1992/edsource_bot/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Route — единственная точка входа логики бота для одного апдейта:
// message vs callback, антиспам, команды, режимы.
func (app *BotApp) Route(ctx context.Context, upd *tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		app.handleCallback(ctx, upd.CallbackQuery)
		return
	}

	msg := upd.Message
	if msg == nil {
		msg = upd.EditedMessage
	}
	if msg == nil || msg.Chat == nil {
		return
	}

	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		text = strings.TrimSpace(msg.Caption)
	}

	// антиспам: слишком частые сообщения молча отбрасываем
	if !app.limiter.Allow(chatID) {
		return
	}

	switch text {
	case btnMenu, "/start", "start", "/menu":
		app.cmdStart(chatID)
		return
	case btnClear:
		app.cmdClear(chatID)
		return
	case btnRestart:
		app.cmdRestart(chatID)
		return
	case btnFix:
		app.cmdFix(chatID)
		return
	case btnCitation:
		app.enterCitationMode(chatID)
		return
	case btnProvider:
		app.showProviderMenu(chatID)
		return
	}

	sess := app.sessions.Ensure(chatID)
	if sess.Mode == session.ModeFormatCitation {
		app.handleCitationMessage(ctx, chatID, text)
		return
	}

	// дефолт: предлагаем выбрать действие
	app.cmdStart(chatID)
}
