// Package i18n provides the bilingual message catalog and locale-aware
// formatting for the web UI. Lookup falls back from the active language to
// English and finally to the literal key, so a missing translation never
// breaks a page.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang identifies a supported display language.
type Lang string

const (
	English    Lang = "en"
	Portuguese Lang = "pt"
)

// Default is the fallback language for lookups and for new sessions.
const Default = English

var matcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
})

// Match resolves an arbitrary language code ("pt", "pt-BR", "en-GB", ...)
// to a supported Lang, defaulting to English.
func Match(code string) Lang {
	if code == "" {
		return Default
	}
	_, idx, conf := matcher.Match(language.Make(code))
	if conf == language.No {
		return Default
	}
	if idx == 1 {
		return Portuguese
	}
	return English
}

// Supported reports whether code names a language the UI can render.
func Supported(code string) bool {
	switch Lang(code) {
	case English, Portuguese:
		return true
	}
	return false
}

// T returns the translation of key in lang, falling back to English and then
// to the key itself.
func T(lang Lang, key string) string {
	if dict, ok := translations[lang]; ok {
		if s, ok := dict[key]; ok {
			return s
		}
	}
	if s, ok := translations[Default][key]; ok {
		return s
	}
	return key
}

// Tf is T with named {placeholder} substitution. Placeholders without a
// matching parameter are left intact.
func Tf(lang Lang, key string, params map[string]string) string {
	s := T(lang, key)
	for k, v := range params {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
