package formatting

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// итог всегда либо (<ссылка> '<текст>'), либо (<текст>)
var wellFormedRe = regexp.MustCompile(`^\((\S+ '.*'|[^']*)\)$`)

func TestAcceptsWellFormedVerbatim(t *testing.T) {
	in := "(https://example.org/article 'Dietary protein intake // AJCN — 2024 — Vol 119')"
	out := FirstFormattedLine(in, "https://fallback.example", "fallback meta")
	assert.Equal(t, in, out)
}

func TestFallbackConstruction(t *testing.T) {
	out := FirstFormattedLine("мусор от модели", "https://example.org/a", "Название // Журнал. 2024")
	assert.Equal(t, "(https://example.org/a 'Название // Журнал. 2024')", out)
}

func TestRecoversLinkFromModelText(t *testing.T) {
	out := FirstFormattedLine("вот ссылка https://example.org/from-model", "", "meta text")
	assert.Equal(t, "(https://example.org/from-model 'meta text')", out)
}

func TestNoLinkAtAll(t *testing.T) {
	out := FirstFormattedLine("просто текст модели", "", "")
	assert.Equal(t, "(просто текст модели)", out)
}

func TestEmptyEverything(t *testing.T) {
	out := FirstFormattedLine("", "", "")
	assert.NotEmpty(t, out)
	assert.Equal(t, emptyReply, out)
}

func TestApostropheSafety(t *testing.T) {
	out := FirstFormattedLine("", "https://example.org/a", "Nurses' Health Study")
	assert.Equal(t, "(https://example.org/a 'Nurses’ Health Study')", out)

	// ограничители не конфликтуют с апострофами: строка разбирается обратно
	m := regexp.MustCompile(`^\((\S+) '(.*)'\)$`).FindStringSubmatch(out)
	require.NotNil(t, m)
	assert.Equal(t, "https://example.org/a", m[1])
	assert.Equal(t, "Nurses’ Health Study", m[2])
}

func TestBacktickAndTypographicQuotes(t *testing.T) {
	out := FirstFormattedLine("", "https://e.org", "a`b’c'd")
	assert.Equal(t, "(https://e.org 'a’b’c’d')", out)
	assert.Regexp(t, wellFormedRe, out)
}

func TestSingleLine(t *testing.T) {
	out := FirstFormattedLine("строка\r\nс переносами\nвнутри", "https://e.org", "")
	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, "\r")
}

func TestTruncation(t *testing.T) {
	long := strings.Repeat("х", 6000)
	out := FirstFormattedLine("", "https://e.org", long)
	assert.LessOrEqual(t, len([]rune(out)), 4096)
	assert.True(t, strings.HasSuffix(out, "…"))
}

func TestWellFormednessProperty(t *testing.T) {
	cases := []struct{ model, link, meta string }{
		{"", "https://e.org", "meta"},
		{"garbage ) ( '", "https://e.org", "meta"},
		{"(half open", "", "meta with 'quotes'"},
		{"ответ", "", ""},
	}
	for _, c := range cases {
		out := FirstFormattedLine(c.model, c.link, c.meta)
		assert.Regexp(t, wellFormedRe, out, "model=%q link=%q meta=%q", c.model, c.link, c.meta)
	}
}
