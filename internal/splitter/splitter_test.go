package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNoLinks(t *testing.T) {
	assert.Nil(t, Split(""))
	assert.Nil(t, Split("Просто текст без ссылок, 2024, том 12"))

	// текст без ссылок не меняется и при повторном прогоне ссылки не появляются
	meta := StripLinks("Dietary protein intake // AJCN — 2024")
	assert.Equal(t, "Dietary protein intake // AJCN — 2024", meta)
	assert.False(t, HasLink(meta))
}

func TestSplitSingleLink(t *testing.T) {
	pairs := Split("Dietary protein intake // AJCN — 2024 https://example.org/article")
	require.Len(t, pairs, 1)
	assert.Equal(t, "https://example.org/article", pairs[0].Link)
	assert.Equal(t, "Dietary protein intake // AJCN — 2024", pairs[0].Meta)
}

func TestSplitLinkOnly(t *testing.T) {
	pairs := Split("https://example.org/article")
	require.Len(t, pairs, 1)
	assert.Equal(t, "https://example.org/article", pairs[0].Link)
	assert.Equal(t, "", pairs[0].Meta)
}

func TestSplitMultiplePairs(t *testing.T) {
	raw := "Первый источник https://a.example/1 Второй источник https://b.example/2 хвост после ссылки"
	pairs := Split(raw)
	require.Len(t, pairs, 2)

	assert.Equal(t, "https://a.example/1", pairs[0].Link)
	assert.Equal(t, "Первый источник", pairs[0].Meta)
	assert.Equal(t, "https://b.example/2", pairs[1].Link)
	assert.Equal(t, "Второй источник хвост после ссылки", pairs[1].Meta)
}

func TestSplitPartitionCompleteness(t *testing.T) {
	raw := "первый https://x.example/1 второй https://y.example/2 третий https://z.example/3"
	pairs := Split(raw)
	require.Len(t, pairs, 3)

	// ссылки идут в исходном порядке, каждой достаётся её кусок текста
	assert.Equal(t, []Pair{
		{Meta: "первый", Link: "https://x.example/1"},
		{Meta: "второй", Link: "https://y.example/2"},
		{Meta: "третий", Link: "https://z.example/3"},
	}, pairs)
}

func TestSplitBareLinkBetweenLinks(t *testing.T) {
	pairs := Split("https://a.example/1 https://b.example/2")
	require.Len(t, pairs, 2)
	assert.Equal(t, "", pairs[0].Meta)
	assert.Equal(t, "", pairs[1].Meta)
}
