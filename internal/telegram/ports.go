package telegram

import (
	"context"

	"github.com/Vovarama1992/edsource_bot/internal/ai"
)

// Messenger — операции против Telegram Bot API, которые нужны боту.
// Редактирование сообщения штатно может не получиться (сообщение удалено,
// слишком старое) — тогда EditMessage возвращает ошибку, и вызывающий код
// шлёт новое сообщение.
type Messenger interface {
	SendMessage(chatID int64, text string, keyboard interface{}) (int, error)
	EditMessage(chatID int64, messageID int, text string) error
	SendChatAction(chatID int64, action string) error
	AnswerCallback(callbackID string) error
}

// LLMGateway — порт к шлюзу моделей.
type LLMGateway interface {
	Invoke(ctx context.Context, provider string, messages []ai.Message) string
	Has(provider string) bool
}
