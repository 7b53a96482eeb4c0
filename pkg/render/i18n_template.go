package render

import (
	"fmt"
	"strings"
)

// TemplateI18nConfig configures the translation helpers exposed to templates.
type TemplateI18nConfig struct {
	// LocaleKey is read when a helper receives a map instead of a locale
	// string. Defaults to "locale".
	LocaleKey string
	// FuncName defaults to "get_string".
	FuncName  string
	OnMissing MissingTranslationHandler
}

// LocaleSource is implemented by template data that knows its locale.
type LocaleSource interface {
	Locale() string
}

// TemplateI18nFuncs returns the template helpers
//
//	get_string(locale, identifier, component) string
//	current_locale(locale) string
//
// where locale is a string, a LocaleSource or a map holding the locale under
// cfg.LocaleKey.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	cfg = cfg.withDefaults()

	getString := func(src any, identifier, component string) string {
		if strings.TrimSpace(identifier) == "" {
			return ""
		}
		return StringWithFallback(t, cfg.localeOf(src), component, identifier, cfg.OnMissing)
	}
	return map[string]any{
		cfg.FuncName:     getString,
		"current_locale": cfg.localeOf,
	}
}

func (cfg TemplateI18nConfig) withDefaults() TemplateI18nConfig {
	cfg.LocaleKey = strings.TrimSpace(cfg.LocaleKey)
	if cfg.LocaleKey == "" {
		cfg.LocaleKey = "locale"
	}
	cfg.FuncName = strings.TrimSpace(cfg.FuncName)
	if cfg.FuncName == "" {
		cfg.FuncName = "get_string"
	}
	if cfg.OnMissing == nil {
		cfg.OnMissing = missingTranslationDefault
	}
	return cfg
}

func (cfg TemplateI18nConfig) localeOf(src any) string {
	switch v := src.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case LocaleSource:
		return strings.TrimSpace(v.Locale())
	case map[string]string:
		return strings.TrimSpace(v[cfg.LocaleKey])
	case map[string]any:
		if locale, ok := v[cfg.LocaleKey]; ok && locale != nil {
			return strings.TrimSpace(fmt.Sprint(locale))
		}
	}
	return ""
}
