package telegram

import (
	"github.com/Vovarama1992/edsource_bot/internal/session"
)

const welcomeText = "Привет! Я помогаю оформлять внутритекстовые ссылки на источники.\n\n" +
	"Нажмите «" + btnCitation + "», затем пришлите данные об источнике " +
	"(название, журнал, год, том, страницы, DOI) и гиперссылку — можно по очереди."

func (app *BotApp) cmdStart(chatID int64) {
	app.sessions.Reset(chatID, session.ModeMenu)
	app.messenger.SendMessage(chatID, welcomeText, MenuKeyboard())
}

func (app *BotApp) cmdClear(chatID int64) {
	// чистим только накопленные части, режим остаётся
	app.sessions.ResetParts(chatID)
	app.messenger.SendMessage(chatID, "Контекст очищен. Продолжайте.", MenuKeyboard())
}

func (app *BotApp) cmdRestart(chatID int64) {
	app.sessions.Reset(chatID, session.ModeMenu)
	app.messenger.SendMessage(chatID, "Сессия перезапущена. Нажмите «"+btnCitation+"».", MenuKeyboard())
}

func (app *BotApp) cmdFix(chatID int64) {
	app.messenger.SendMessage(chatID,
		"Если долго нет ответа, просто повторите запрос.\n"+
			"Обработка идёт в фоне, поэтому Telegram всегда получает 200.",
		MenuKeyboard())
}

func (app *BotApp) showProviderMenu(chatID int64) {
	app.messenger.SendMessage(chatID, "Выберите модель:", ProviderKeyboard(app.gateway))
}
