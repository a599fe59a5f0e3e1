// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package i18n provides the message catalog behind every user-facing error
// and help label of the dispatch engine.
//
// Messages live in embedded JSON files (locales/<tag>.json). English is the
// reference language: every other language must define exactly the same keys.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/napalu/dispatch/types"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrExtraKey                           = errors.New("extra key")
	ErrMissingKey                         = errors.New("missing key")
)

// Bundle holds translations per language and a printer per language
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
}

var (
	defaultBundleOnce sync.Once
	defaultBundle     *Bundle
)

// Default returns the process-wide bundle built from the embedded locales
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		var err error
		defaultBundle, err = NewBundleWithFS(defaultLocales, "locales")
		if err != nil {
			panic("failed to load embedded locales: " + err.Error())
		}
	})

	return defaultBundle
}

// NewEmptyBundle creates a bundle with no translations and English as default language
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
	}
}

// NewBundleWithFS loads every <tag>.json file found in dir. The default language is loaded first
// so that the other languages can be validated against it.
func NewBundleWithFS(fs embed.FS, dir string) (*Bundle, error) {
	b := NewEmptyBundle()

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	deferred := make([]types.KeyValue[language.Tag, string], 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}
		file := path.Join(dir, entry.Name())
		if tag != b.defaultLang {
			deferred = append(deferred, types.KeyValue[language.Tag, string]{Key: tag, Value: file})
			continue
		}
		if err := b.loadFile(fs, tag, file); err != nil {
			return nil, err
		}
	}

	if !b.HasLanguage(b.defaultLang) {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	for _, kv := range deferred {
		if err := b.loadFile(fs, kv.Key, kv.Value); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// T returns the translation for key in the default language
func (b *Bundle) T(key string, args ...interface{}) string {
	return b.TL(b.GetDefaultLanguage(), key, args...)
}

// TL returns the translation for key in lang, falling back to the default language and finally to the key
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, l := range []language.Tag{lang, b.defaultLang} {
		if msgs, ok := b.translations[l]; ok {
			if _, ok := msgs[key]; ok {
				return b.printers[l].Sprintf(key, args...)
			}
		}
	}

	return key
}

// Message returns the unformatted message for key in the default language
func (b *Bundle) Message(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	msg, ok := b.translations[b.defaultLang][key]
	return msg, ok
}

// AddLanguage adds or extends a language. A new non-default language must define the same keys as the default one.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, known := b.translations[lang]
	merged := make(map[string]string, len(existing)+len(translations))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}

	if !known && lang != b.defaultLang {
		if problems := b.validate(lang, merged); len(problems) > 0 {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, lang, errors.Join(problems...))
		}
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
		}
	}

	b.translations[lang] = merged
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))

	return nil
}

// HasLanguage reports whether lang has translations
func (b *Bundle) HasLanguage(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, exists := b.translations[lang]
	return exists
}

// Languages returns the supported languages sorted by tag
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].String() < langs[j].String()
	})

	return langs
}

// Match returns the best supported language for the requested tag
func (b *Bundle) Match(requested language.Tag) language.Tag {
	langs := b.Languages()
	if len(langs) == 0 {
		return b.GetDefaultLanguage()
	}
	_, idx, confidence := language.NewMatcher(langs).Match(requested)
	if confidence == language.No {
		return b.GetDefaultLanguage()
	}
	return langs[idx]
}

// SetDefaultLanguage sets the language used by T
func (b *Bundle) SetDefaultLanguage(lang language.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaultLang = lang
}

// GetDefaultLanguage returns the language used by T
func (b *Bundle) GetDefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.defaultLang
}

func (b *Bundle) loadFile(fs embed.FS, lang language.Tag, file string) error {
	data, err := fs.ReadFile(file)
	if err != nil {
		return err
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidTranslations, file, err)
	}
	if len(translations) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyTranslations, lang)
	}

	return b.AddLanguage(lang, translations)
}

func (b *Bundle) validate(lang language.Tag, translations map[string]string) []error {
	reference, ok := b.translations[b.defaultLang]
	if !ok {
		return []error{fmt.Errorf("%w: %s", ErrLanguageNotFound, b.defaultLang)}
	}

	var problems []error
	for key := range reference {
		if _, ok := translations[key]; !ok {
			problems = append(problems, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, ok := reference[key]; !ok {
			problems = append(problems, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}

	return problems
}
