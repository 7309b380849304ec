// Package i18n provides explicit message catalogs for the bot.
//
// Lookups are plain (locale, key) function calls. A missing translation
// falls back to the default locale, then to the key itself so a typo shows
// up in chat instead of hiding behind an empty message.
package i18n

// DefaultLocale is used when the requested locale has no catalog entry.
const DefaultLocale = "en"

// Language pairs a locale code with its display name for language pickers.
type Language struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// DefaultLanguages lists the locales the bot ships catalogs for.
func DefaultLanguages() []Language {
	return []Language{
		{Code: "en", Name: "🇺🇸 English"},
		{Code: "am", Name: "🇪🇹 አማርኛ"},
	}
}

var catalogs = map[string]map[string]string{
	"en": catalogEN,
	"am": catalogAM,
}

// T resolves key for locale.
func T(locale, key string) string {
	if cat, ok := catalogs[locale]; ok {
		if msg, ok := cat[key]; ok {
			return msg
		}
	}
	if locale != DefaultLocale {
		if msg, ok := catalogs[DefaultLocale][key]; ok {
			return msg
		}
	}
	return key
}

// Has reports whether a catalog exists for locale.
func Has(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}
