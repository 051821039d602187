package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "total": {"ru": "Итого", "en": "Total"},
  "only_vi": {"vi": "Chỉ", "de": "Nur"},
  "blank": {"ru": ""}
}`

func TestTranslateFallbackChain(t *testing.T) {
	tr, err := Parse([]byte(sample), "ru")
	require.NoError(t, err)

	assert.Equal(t, "Total", tr.T("total", "en"))
	assert.Equal(t, "Итого", tr.T("total", "vi"), "missing language falls back to default")
	assert.Equal(t, "Nur", tr.T("only_vi", "en"), "then the first language by code")
	assert.Equal(t, "blank", tr.T("blank", "en"), "then the key")
	assert.Equal(t, "missing", tr.T("missing", "en"))
}

func TestLanguagesDefaultFirst(t *testing.T) {
	tr, err := Parse([]byte(sample), "ru")
	require.NoError(t, err)
	assert.Equal(t, []string{"ru", "de", "en", "vi"}, tr.Languages())
}

func TestMatchAcceptLanguage(t *testing.T) {
	tr, err := New("ru")
	require.NoError(t, err)

	assert.Equal(t, "en", tr.Match("en-US,en;q=0.9"))
	assert.Equal(t, "vi", tr.Match("vi"))
	assert.Equal(t, "ru", tr.Match(""))
	assert.Equal(t, "ru", tr.Match("!!"))
}

func TestResolve(t *testing.T) {
	tr, err := New("ru")
	require.NoError(t, err)
	assert.Equal(t, "en", tr.Resolve(" EN "))
	assert.Equal(t, "ru", tr.Resolve("xx"))
}

func TestBundledDictionaryHasDateLayouts(t *testing.T) {
	tr, err := New("ru")
	require.NoError(t, err)
	for _, lang := range tr.Languages() {
		_, ok := tr.Lookup("date_layout", lang)
		assert.True(t, ok, lang)
	}
	assert.Equal(t, "02.01.2006", tr.T("date_layout", "ru"))
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]byte("{"), "ru")
	require.Error(t, err)
	_, err = Parse([]byte("{}"), " ")
	require.Error(t, err)
}
