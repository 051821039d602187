package i18n

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed lang.json
var bundled []byte

// Translator resolves labels by key and language code. Missing
// translations fall back to the default language, then to the first
// language with a value, then to the key itself.
type Translator struct {
	messages    map[string]map[string]string
	defaultLang string
	langs       []string
	matcher     language.Matcher
}

// New returns a translator over the bundled dictionary.
func New(defaultLang string) (*Translator, error) {
	return Parse(bundled, defaultLang)
}

func Parse(data []byte, defaultLang string) (*Translator, error) {
	var messages map[string]map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}
	defaultLang = strings.ToLower(strings.TrimSpace(defaultLang))
	if defaultLang == "" {
		return nil, fmt.Errorf("default language is required")
	}

	seen := map[string]struct{}{}
	for _, byLang := range messages {
		for code := range byLang {
			seen[code] = struct{}{}
		}
	}
	delete(seen, defaultLang)
	langs := make([]string, 0, len(seen)+1)
	for code := range seen {
		langs = append(langs, code)
	}
	sort.Strings(langs)
	langs = append([]string{defaultLang}, langs...)

	tags := make([]language.Tag, 0, len(langs))
	for _, code := range langs {
		tags = append(tags, language.Make(code))
	}

	return &Translator{
		messages:    messages,
		defaultLang: defaultLang,
		langs:       langs,
		matcher:     language.NewMatcher(tags),
	}, nil
}

func (t *Translator) Default() string {
	return t.defaultLang
}

// Languages lists the known language codes, default first.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.langs...)
}

// T never returns an empty string.
func (t *Translator) T(key, lang string) string {
	if value, ok := t.Lookup(key, lang); ok {
		return value
	}
	return key
}

// Lookup reports whether any translation exists for key.
func (t *Translator) Lookup(key, lang string) (string, bool) {
	byLang, ok := t.messages[key]
	if !ok {
		return "", false
	}
	if value := byLang[lang]; value != "" {
		return value, true
	}
	if value := byLang[t.defaultLang]; value != "" {
		return value, true
	}
	codes := make([]string, 0, len(byLang))
	for code, value := range byLang {
		if value != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return "", false
	}
	sort.Strings(codes)
	return byLang[codes[0]], true
}

// Match picks the best known language for an Accept-Language header.
func (t *Translator) Match(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return t.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLang
	}
	_, index, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return t.defaultLang
	}
	return t.langs[index]
}

// Resolve normalizes an explicit lang parameter, falling back to the
// default for unknown codes.
func (t *Translator) Resolve(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, code := range t.langs {
		if code == lang {
			return code
		}
	}
	return t.defaultLang
}
