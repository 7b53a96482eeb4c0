// Package i18n loads YAML message catalogs and resolves component strings
// through golang.org/x/text/message.
//
// Catalog files live at locales/<locale>/<namespace>.yaml:
//
//	locale: en-US
//	namespace: unilabeltype_accordion
//	messages:
//	  pluginname: Accordion
//
// Messages are addressed as "<namespace>:<key>".
package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback locale every bundle must define.
const BaseLocale = "en-US"

const catalogGlob = "locales/*/*.yaml"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	messages map[string]map[string]string
	builder  *catalog.Builder
}

// Load reads catalog files from each filesystem. Later filesystems may add
// namespaces but not redefine keys.
func Load(sources ...fs.FS) (*Bundle, error) {
	bundle := &Bundle{
		messages: map[string]map[string]string{},
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
	}

	found := 0
	for _, source := range sources {
		if source == nil {
			continue
		}
		paths, err := fs.Glob(source, catalogGlob)
		if err != nil {
			return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
		}
		sort.Strings(paths)
		for _, p := range paths {
			if err := bundle.addFile(source, p); err != nil {
				return nil, err
			}
			found++
		}
	}
	if found == 0 {
		return nil, fmt.Errorf("i18n: no catalog files found")
	}
	if _, ok := bundle.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %s is not defined", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) addFile(source fs.FS, p string) error {
	data, err := fs.ReadFile(source, p)
	if err != nil {
		return fmt.Errorf("i18n: read %s: %w", p, err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", p, err)
	}

	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))
	locale := strings.TrimSpace(file.Locale)
	namespace := strings.TrimSpace(file.Namespace)
	switch {
	case locale == "":
		return fmt.Errorf("i18n: %s: locale is required", p)
	case locale != localeFromPath:
		return fmt.Errorf("i18n: %s: locale %q must match path locale %q", p, locale, localeFromPath)
	case namespace == "":
		return fmt.Errorf("i18n: %s: namespace is required", p)
	case namespace != namespaceFromPath:
		return fmt.Errorf("i18n: %s: namespace %q must match file name %q", p, namespace, namespaceFromPath)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("i18n: %s: parse locale %q: %w", p, locale, err)
	}

	localeMessages, ok := b.messages[locale]
	if !ok {
		localeMessages = map[string]string{}
		b.messages[locale] = localeMessages
	}
	for key, value := range file.Messages {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			return fmt.Errorf("i18n: %s: message key cannot be blank", p)
		}
		full := namespace + ":" + trimmed
		if _, exists := localeMessages[full]; exists {
			return fmt.Errorf("i18n: %s: duplicate key %q in locale %q", p, full, locale)
		}
		localeMessages[full] = value
		if err := b.builder.SetString(tag, full, value); err != nil {
			return fmt.Errorf("i18n: %s: register %q: %w", p, full, err)
		}
	}
	return nil
}

// Translate implements render.Translator. Lookups fall back from the exact
// locale to its base language and then to BaseLocale.
func (b *Bundle) Translate(locale, key string, args ...any) (string, error) {
	if b == nil {
		return "", fmt.Errorf("i18n: bundle is nil")
	}
	resolved, ok := b.resolve(locale, key)
	if !ok {
		return "", fmt.Errorf("i18n: missing message %q for locale %q", key, locale)
	}
	tag, err := language.Parse(resolved)
	if err != nil {
		return "", fmt.Errorf("i18n: parse locale %q: %w", resolved, err)
	}
	printer := message.NewPrinter(tag, message.Catalog(b.builder))
	return printer.Sprintf(key, args...), nil
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.messages))
	for locale := range b.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func (b *Bundle) resolve(locale, key string) (string, bool) {
	for _, candidate := range localeCandidates(locale) {
		if _, ok := b.messages[candidate][key]; ok {
			return candidate, true
		}
	}
	return "", false
}

func localeCandidates(locale string) []string {
	locale = strings.TrimSpace(locale)
	var out []string
	if locale != "" {
		out = append(out, locale)
		if tag, err := language.Parse(locale); err == nil {
			if base, conf := tag.Base(); conf != language.No && base.String() != locale {
				out = append(out, base.String())
			}
		}
	}
	return append(out, BaseLocale)
}
