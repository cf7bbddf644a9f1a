package splitter

import (
	"regexp"
	"strings"
)

var linkRe = regexp.MustCompile(`(?i)https?://\S+`)

// Pair — один источник: описание (meta) и гиперссылка.
type Pair struct {
	Meta string
	Link string
}

// HasLink — есть ли в тексте хотя бы одна ссылка.
func HasLink(text string) bool {
	return linkRe.MatchString(text)
}

// StripLinks убирает из текста все ссылки.
func StripLinks(text string) string {
	return strings.TrimSpace(linkRe.ReplaceAllString(text, ""))
}

// Split находит все ссылки в тексте и сопоставляет им «ближайшее» описание.
// Подход простой, но практичный:
//   - ссылок нет — пустой результат, весь текст остаётся meta у вызывающего
//   - одна ссылка — один элемент (весь остальной текст, ссылка)
//   - несколько ссылок — режем по ссылкам, текст между ними становится meta,
//     хвост после последней ссылки приклеивается к последней паре
func Split(raw string) []Pair {
	text := strings.TrimSpace(raw)
	locs := linkRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	if len(locs) == 1 {
		return []Pair{{
			Meta: StripLinks(text),
			Link: text[locs[0][0]:locs[0][1]],
		}}
	}

	result := make([]Pair, 0, len(locs))
	lastEnd := 0
	for _, loc := range locs {
		link := text[loc[0]:loc[1]]
		meta := StripLinks(text[lastEnd:loc[0]])
		result = append(result, Pair{Meta: meta, Link: link})
		lastEnd = loc[1]
	}

	// хвост после последней ссылки
	tail := StripLinks(text[lastEnd:])
	if tail != "" {
		last := &result[len(result)-1]
		last.Meta = strings.TrimSpace(last.Meta + " " + tail)
	}

	return result
}
