// Package i18n resolves display strings with an explicit layered fallback:
// current language → base language → the raw key.
package i18n

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// BaseLanguage is the last dictionary consulted before giving up on a key.
const BaseLanguage = "es"

const languageKey = "app_language"

// Store is the persistence slot holding the chosen language code.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Translator looks up keys for one language. The zero value translates with
// the base language only.
type Translator struct {
	lang string
}

func New(lang string) Translator {
	return Translator{lang: lang}
}

func (t Translator) Language() string {
	if t.lang == "" {
		return BaseLanguage
	}
	return t.lang
}

// T resolves key through the fallback chain. An unknown key comes back
// verbatim, which keeps missing translations visible instead of blank.
func (t Translator) T(key string) string {
	if dict, ok := catalogs[t.Language()]; ok {
		if msg, ok := dict[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[BaseLanguage][key]; ok {
		return msg
	}
	return key
}

// Supported returns the language codes with a catalog, sorted.
func Supported() []string {
	codes := make([]string, 0, len(catalogs))
	for code := range catalogs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// Load builds a Translator from the persisted language code. Anything
// missing, unreadable, or unsupported falls back to the base language.
func Load(ctx context.Context, store Store, logger *log.Logger) Translator {
	if logger == nil {
		logger = log.Default()
	}
	code, found, err := store.Get(ctx, languageKey)
	if err != nil {
		logger.Printf("WARN: failed to read saved language, using %s: %v", BaseLanguage, err)
		return New(BaseLanguage)
	}
	if !found || !supported(code) {
		return New(BaseLanguage)
	}
	return New(code)
}

// Save persists a supported two-letter language code.
func Save(ctx context.Context, store Store, lang string) error {
	if !supported(lang) {
		return fmt.Errorf("unsupported language %q (supported: %v)", lang, Supported())
	}
	if err := store.Set(ctx, languageKey, lang); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}
