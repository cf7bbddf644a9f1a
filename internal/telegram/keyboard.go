package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// литеральные подписи кнопок: роутер матчит текст сообщения по ним
const (
	btnMenu     = "🏠 Меню"
	btnClear    = "🔄 Очистить контекст"
	btnRestart  = "♻️ Перезапуск"
	btnFix      = "🛠 Починить сбои"
	btnCitation = "📚 Оформить источник внутри текста"
	btnProvider = "⚙️ Модель"
)

func MenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row1 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnCitation),
	)
	row2 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnClear),
		tgbotapi.NewKeyboardButton(btnRestart),
	)
	row3 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnMenu),
		tgbotapi.NewKeyboardButton(btnProvider),
		tgbotapi.NewKeyboardButton(btnFix),
	)

	kb := tgbotapi.NewReplyKeyboard(row1, row2, row3)
	kb.ResizeKeyboard = true
	return kb
}

// ProviderKeyboard — inline-клавиатура выбора модели. callback data имеет
// вид provider:<имя>; предлагаются только реально подключённые провайдеры.
func ProviderKeyboard(gateway LLMGateway) tgbotapi.InlineKeyboardMarkup {
	labels := []struct {
		title string
		name  string
	}{
		{"Z.AI (GLM)", "zai"},
		{"DeepSeek", "deepseek"},
		{"OpenAI", "openai"},
		{"Amvera (LLaMA)", "amvera"},
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range labels {
		if !gateway.Has(l.name) {
			continue
		}
		btn := tgbotapi.NewInlineKeyboardButtonData(l.title, "provider:"+l.name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 В меню", "menu"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
