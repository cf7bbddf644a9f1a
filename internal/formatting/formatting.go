package formatting

import (
	"fmt"
	"regexp"
	"strings"
)

var linkRe = regexp.MustCompile(`(?i)https?://\S+`)

// лимит Telegram на длину одного сообщения
const maxMessageLen = 4096

const emptyReply = "Извините, модель вернула пустой ответ."

// IsLink — есть ли в тексте ссылка.
func IsLink(text string) bool {
	return linkRe.MatchString(text)
}

// ForceParenthesized приводит произвольный ответ модели к виду (ссылка 'meta').
// Если модель уже вернула корректную скобку — отдаём как есть. Иначе собираем
// строку сами из ссылки и meta, сохранённых в сессии.
func ForceParenthesized(link, meta, modelText string) string {
	txt := strings.TrimSpace(modelText)
	if strings.HasPrefix(txt, "(") && strings.HasSuffix(txt, ")") && strings.Contains(txt, "'") {
		return txt // уже ок
	}

	lnk := strings.TrimSpace(link)
	mt := strings.TrimSpace(meta)

	if lnk == "" {
		if found := linkRe.FindString(txt); found != "" {
			lnk = found
		}
	}
	if mt == "" {
		mt = txt
	}

	// апострофы внутрь: типографский ’ не путается с одинарными кавычками-ограничителями
	safeMeta := strings.NewReplacer("’", "'", "`", "'").Replace(mt)
	safeMeta = strings.ReplaceAll(safeMeta, "'", "’")

	if lnk == "" && safeMeta == "" {
		return emptyReply
	}
	if lnk != "" {
		return fmt.Sprintf("(%s '%s')", lnk, safeMeta)
	}
	return fmt.Sprintf("(%s)", safeMeta)
}

// FirstFormattedLine — итоговая строка для пользователя: одна строка,
// не длиннее лимита Telegram, всегда непустая.
func FirstFormattedLine(modelText, fallbackLink, fallbackMeta string) string {
	out := ForceParenthesized(fallbackLink, fallbackMeta, modelText)
	out = strings.ReplaceAll(out, "\r", " ")
	out = strings.ReplaceAll(out, "\n", " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return emptyReply
	}
	if runes := []rune(out); len(runes) > maxMessageLen {
		out = string(runes[:maxMessageLen-6]) + "…"
	}
	return out
}
