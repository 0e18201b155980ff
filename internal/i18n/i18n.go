// Package i18n translates user-facing error messages into the caller's
// language, negotiated from Accept-Language.
package i18n

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLocale        = "en"
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks up messages by key and locale. It is read-only after
// construction and safe for concurrent use.
type Translator struct {
	messages map[string]map[string]string
}

func NewTranslator() *Translator {
	return &Translator{messages: catalog}
}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale, falling back to the
// English message and then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale negotiates the response locale from Accept-Language, picking the
// supported language with the highest weight. Region subtags are ignored, so
// "pt-BR" selects "pt".
func GetLocale(c *gin.Context) string {
	return negotiate(c.GetHeader(AcceptLanguageHeader), GetTranslator())
}

func negotiate(header string, t *Translator) string {
	best, bestQ := DefaultLocale, 0.0
	for _, part := range strings.Split(header, ",") {
		tag, q := parseLanguageRange(part)
		if tag == "" || q <= bestQ || !t.Supports(tag) {
			continue
		}
		best, bestQ = tag, q
	}
	return best
}

// parseLanguageRange splits "en-US;q=0.8" into ("en", 0.8). A missing or
// malformed weight counts as 1.
func parseLanguageRange(part string) (string, float64) {
	tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
	tag, _, _ = strings.Cut(strings.TrimSpace(tag), "-")
	tag = strings.ToLower(tag)

	q := 1.0
	if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			q = parsed
		}
	}
	return tag, q
}
