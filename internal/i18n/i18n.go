// Package i18n holds the pt-BR and English catalogs for page titles and
// empty-listing messages, and picks the language of a request.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "sapl_lang"
)

var (
	supported = []language.Tag{language.BrazilianPortuguese, language.English}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the languages that have a catalog.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// ParseTag maps value to a supported language.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

// Localizer resolves request languages and translates catalog keys.
type Localizer struct {
	fallback language.Tag
}

// New creates a Localizer whose fallback is defaultLang, or pt-BR when
// defaultLang is not supported.
func New(defaultLang string) *Localizer {
	tag, ok := ParseTag(defaultLang)
	if !ok {
		tag = language.BrazilianPortuguese
	}
	return &Localizer{fallback: tag}
}

// Default returns the fallback language.
func (l *Localizer) Default() language.Tag {
	return l.fallback
}

// Resolve picks the language for r: the lang query parameter, then the
// language cookie, then Accept-Language. The bool reports whether the
// choice came from the query parameter and should be persisted.
func (l *Localizer) Resolve(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return l.fallback, false
	}

	if v := r.URL.Query().Get(LangParam); v != "" {
		if tag, ok := ParseTag(v); ok {
			return tag, true
		}
	}

	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(c.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, idx, conf := matcher.Match(tags...); conf != language.No {
				return supported[idx], false
			}
		}
	}

	return l.fallback, false
}

// Printer returns a message printer for tag.
func (l *Localizer) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Text translates key into tag.
func (l *Localizer) Text(tag language.Tag, key Key) string {
	return message.NewPrinter(tag).Sprintf(string(key))
}

// SetLanguageCookie persists tag as the user's language.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
