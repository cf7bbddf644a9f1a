package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotMessenger — реализация Messenger поверх tgbotapi.
type BotMessenger struct {
	bot *tgbotapi.BotAPI
}

func NewBotMessenger(bot *tgbotapi.BotAPI) *BotMessenger {
	return &BotMessenger{bot: bot}
}

func (m *BotMessenger) SendMessage(chatID int64, text string, keyboard interface{}) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	sent, err := m.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (m *BotMessenger) EditMessage(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.DisableWebPagePreview = true
	_, err := m.bot.Request(edit)
	if err != nil && isNotModified(err) {
		// текст совпал с уже отправленным — считаем успехом
		return nil
	}
	return err
}

func (m *BotMessenger) SendChatAction(chatID int64, action string) error {
	_, err := m.bot.Request(tgbotapi.NewChatAction(chatID, action))
	return err
}

func (m *BotMessenger) AnswerCallback(callbackID string) error {
	_, err := m.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
