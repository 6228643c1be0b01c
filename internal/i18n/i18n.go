// Package i18n provides the Spanish and English message catalogs, locale
// negotiation and locale-aware currency formatting.
package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"expensereport/internal/core"
)

// Locale is a supported UI language.
type Locale string

const (
	Spanish Locale = "es"
	English Locale = "en"

	Default = Spanish
)

// Vars are interpolation values for {{name}} placeholders.
type Vars map[string]any

var catalogs = map[Locale]map[string]string{
	Spanish: catalogEs,
	English: catalogEn,
}

var supported = []language.Tag{language.Spanish, language.English}

var matcher = language.NewMatcher(supported)

// ParseLocale accepts "es"/"en" (case-insensitive, region ignored).
func ParseLocale(s string) (Locale, bool) {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")
	switch Locale(base) {
	case Spanish, English:
		return Locale(base), true
	default:
		return "", false
	}
}

// Negotiate picks the locale from an Accept-Language header, falling back to fallback.
func Negotiate(acceptLanguage string, fallback Locale) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	if supported[idx] == language.English {
		return English
	}
	return Spanish
}

// Translator resolves catalog keys for one locale.
type Translator struct {
	locale   Locale
	messages map[string]string
	printer  *message.Printer
	unit     currency.Unit
}

// New returns a translator for locale. Unknown locales fall back to Spanish.
func New(locale Locale) *Translator {
	msgs, ok := catalogs[locale]
	if !ok {
		locale = Default
		msgs = catalogs[locale]
	}
	t := &Translator{locale: locale, messages: msgs}
	switch locale {
	case English:
		t.printer = message.NewPrinter(language.AmericanEnglish)
		t.unit = currency.USD
	default:
		t.printer = message.NewPrinter(language.MustParse("es-MX"))
		t.unit = currency.MXN
	}
	return t
}

func (t *Translator) Locale() Locale { return t.locale }

// T looks up key and interpolates vars. A numeric "count" var selects the
// _one/_other form when key itself is absent. Missing keys return the key.
func (t *Translator) T(key string, vars Vars) string {
	msg, ok := t.messages[key]
	if !ok {
		if count, has := countOf(vars); has {
			suffix := "_other"
			if count == 1 {
				suffix = "_one"
			}
			msg, ok = t.messages[key+suffix]
		}
	}
	if !ok {
		return key
	}
	for name, v := range vars {
		msg = strings.ReplaceAll(msg, "{{"+name+"}}", fmt.Sprint(v))
	}
	return msg
}

// Messages returns a copy of the catalog.
func (t *Translator) Messages() map[string]string {
	out := make(map[string]string, len(t.messages))
	for k, v := range t.messages {
		out[k] = v
	}
	return out
}

func (t *Translator) Category(k core.CategoryKind) string {
	return t.T("categories."+string(k), nil)
}

// CategoryLabel renders a category with its Other detail: "Otros (Software)".
func (t *Translator) CategoryLabel(c core.Category) string {
	label := t.Category(c.Kind())
	if c.IsOther() && c.Detail() != "" {
		label += " (" + c.Detail() + ")"
	}
	return label
}

func (t *Translator) Status(s core.Status) string {
	return t.T("statuses."+string(s), nil)
}

// MonthLabel renders "Ene 2025" style chart labels.
func (t *Translator) MonthLabel(m core.Month) string {
	return t.T("monthsShort."+strconv.Itoa(int(m.Month)), nil) + " " + strconv.Itoa(m.Year)
}

// Currency formats an amount in the locale's display currency (es: MXN, en: USD).
// Display only; no conversion happens.
func (t *Translator) Currency(m core.Money) string {
	return t.printer.Sprint(currency.NarrowSymbol(t.unit.Amount(m.Float())))
}

func countOf(vars Vars) (int64, bool) {
	v, ok := vars["count"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
