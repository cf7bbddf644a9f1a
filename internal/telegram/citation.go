package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vovarama1992/edsource_bot/internal/ai"
	"github.com/Vovarama1992/edsource_bot/internal/formatting"
	"github.com/Vovarama1992/edsource_bot/internal/session"
	"github.com/Vovarama1992/edsource_bot/internal/splitter"
	"github.com/google/uuid"
)

const systemPromptFormatter = `Ты — форматтер внутритекстовых ссылок на источники.
На вход приходят: строка TODAY=дд.мм.гггг, описание источника (название, журнал, год, том, страницы, DOI) и гиперссылка.
Верни РОВНО ОДНУ строку вида (ссылка 'данные источника') — скобки и одинарные кавычки обязательны.
Данные источника приведи к виду: Название // Журнал. Год. Том. Страницы. DOI — без выдумывания отсутствующих полей.
Для правовых источников добавь «(дата обращения: TODAY)».
Никакого другого текста, пояснений и переносов строк.`

const (
	enterModeText = "Режим оформления включён. Пришлите источник (название/журнал/год/том/стр/DOI) и гиперссылку. Можно по очереди."
	askLinkText   = "Пришлите гиперссылку на источник (начинается с http/https)."
	askMetaText   = "Пришлите данные об источнике (название, журнал/место публикации, год, том/номер, страницы, DOI)."
	workingText   = "Оформляю…"
	slowText      = "Сервис отвечает дольше обычного. Попробуйте ещё раз."
	failText      = "Не удалось оформить источник. Попробуйте ещё раз."
)

func (app *BotApp) enterCitationMode(chatID int64) {
	app.sessions.Reset(chatID, session.ModeFormatCitation)
	app.messenger.SendMessage(chatID, enterModeText, MenuKeyboard())
}

// handleCitationMessage накапливает части источника из сообщения и, когда
// собраны и ссылка, и описание, запускает фонового воркера. Чтение и запись
// частей идут одной критической секцией чата.
func (app *BotApp) handleCitationMessage(_ context.Context, chatID int64, text string) {
	pairs := splitter.Split(text)

	// несколько ссылок в одном сообщении — батч, сессию не трогаем
	if len(pairs) > 1 {
		provider := app.sessions.Ensure(chatID).Provider
		app.Spawn(func() { app.runBatch(chatID, provider, pairs) })
		return
	}

	var snap session.Parts
	var provider string
	app.sessions.WithChat(chatID, func(sess *session.Session) {
		parts := &sess.Parts
		if len(pairs) == 1 {
			if parts.Link == "" {
				parts.Link = pairs[0].Link
			}
			if pairs[0].Meta != "" {
				parts.Meta = joinMeta(parts.Meta, pairs[0].Meta)
			}
		} else if text != "" {
			parts.Meta = joinMeta(parts.Meta, text)
		}
		snap = *parts
		provider = sess.Provider
	})

	switch {
	case snap.Link != "" && snap.Meta != "":
		app.messenger.SendChatAction(chatID, "typing")
		placeholderID, _ := app.messenger.SendMessage(chatID, workingText, MenuKeyboard())
		app.Spawn(func() { app.formatWorker(chatID, provider, snap, placeholderID) })
	case snap.Link == "":
		app.messenger.SendMessage(chatID, askLinkText, MenuKeyboard())
	default:
		app.messenger.SendMessage(chatID, askMetaText, MenuKeyboard())
	}
}

// runBatch оформляет пары последовательно, каждая со своим плейсхолдером.
func (app *BotApp) runBatch(chatID int64, provider string, pairs []splitter.Pair) {
	for _, p := range pairs {
		if p.Meta == "" && !app.batchAllowEmptyMeta {
			app.messenger.SendMessage(chatID, "Пропустил ссылку без описания: "+p.Link, MenuKeyboard())
			continue
		}
		app.messenger.SendChatAction(chatID, "typing")
		placeholderID, _ := app.messenger.SendMessage(chatID, workingText, MenuKeyboard())
		app.formatWorker(chatID, provider, session.Parts{Link: p.Link, Meta: p.Meta}, placeholderID)
	}
}

// formatWorker — один цикл оформления: LLM под сторожевым таймаутом,
// нормализация, доставка (редактирование плейсхолдера либо новое сообщение),
// сброс накопленных частей. Пользователь получает ровно один итоговый текст
// при любом исходе.
func (app *BotApp) formatWorker(chatID int64, provider string, parts session.Parts, placeholderID int) {
	reqID := uuid.NewString()[:8]
	log.Printf("[citation] start chat=%d req=%s provider=%q", chatID, reqID, provider)

	ctx, cancel := context.WithTimeout(context.Background(), app.watchdog)
	defer cancel()

	out := app.runFormat(ctx, provider, parts)

	delivered := false
	if placeholderID != 0 {
		if err := app.messenger.EditMessage(chatID, placeholderID, out); err == nil {
			delivered = true
		} else {
			log.Printf("[citation] edit fail chat=%d req=%s: %v", chatID, reqID, err)
		}
	}
	if !delivered {
		app.messenger.SendMessage(chatID, out, MenuKeyboard())
	}

	// части чистим всегда, режим не трогаем
	app.sessions.ResetParts(chatID)
	log.Printf("[citation] done chat=%d req=%s", chatID, reqID)
}

func (app *BotApp) runFormat(ctx context.Context, provider string, parts session.Parts) (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[citation] panic recovered: %v", r)
			out = failText
		}
	}()

	today := time.Now().Format("02.01.2006")
	payload := strings.TrimSpace(fmt.Sprintf("TODAY=%s\n%s\n%s", today, parts.Meta, parts.Link))

	messages := []ai.Message{
		{Role: "system", Content: systemPromptFormatter},
		{Role: "user", Content: payload},
	}

	raw := app.gateway.Invoke(ctx, provider, messages)
	if ctx.Err() != nil {
		// сторожевой таймаут: фиксированный ответ, без оборачивания в скобки
		return slowText
	}
	return formatting.FirstFormattedLine(raw, parts.Link, parts.Meta)
}

func joinMeta(existing, add string) string {
	return strings.TrimSpace(strings.TrimSpace(existing) + " " + strings.TrimSpace(add))
}
