package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves a message key for a locale. Keys are namespaced by
// component, see Key.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the string shown when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Key joins a component and a string identifier, for example
// Key("unilabeltype_accordion", "nocontent").
func Key(component, identifier string) string {
	component = strings.TrimSpace(component)
	identifier = strings.TrimSpace(identifier)
	if component == "" {
		return identifier
	}
	return component + ":" + identifier
}

// String translates identifier within component. Missing translations yield
// the `[[identifier]]` marker so gaps are visible in rendered output.
func String(t Translator, locale, component, identifier string, args ...any) string {
	return StringWithFallback(t, locale, component, identifier, nil, args...)
}

// StringWithFallback is String with a custom missing translation handler.
func StringWithFallback(t Translator, locale, component, identifier string, onMissing MissingTranslationHandler, args ...any) string {
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	key := Key(component, identifier)
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	identifier := key
	if idx := strings.LastIndex(key, ":"); idx >= 0 {
		identifier = key[idx+1:]
	}
	return "[[" + identifier + "]]"
}
