package render_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-unilabel/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestStringTranslatesNamespacedKey(t *testing.T) {
	tr := stubTranslator{"unilabeltype_accordion:nocontent": "No content"}

	got := render.String(tr, "en-US", "unilabeltype_accordion", "nocontent")
	if got != "No content" {
		t.Fatalf("String = %q, want %q", got, "No content")
	}
}

func TestStringMarksMissingKeys(t *testing.T) {
	cases := map[string]render.Translator{
		"nil translator": nil,
		"unknown key":    stubTranslator{},
	}
	for name, tr := range cases {
		t.Run(name, func(t *testing.T) {
			got := render.String(tr, "en-US", "unilabeltype_accordion", "segment")
			if got != "[[segment]]" {
				t.Fatalf("String = %q, want [[segment]]", got)
			}
		})
	}
}

func TestStringWithFallbackHandler(t *testing.T) {
	var gotErr error
	got := render.StringWithFallback(nil, "en-US", "demo", "title", func(_ string, key string, _ []any, err error) string {
		gotErr = err
		return "fallback:" + key
	})
	if got != "fallback:demo:title" {
		t.Fatalf("StringWithFallback = %q", got)
	}
	if !errors.Is(gotErr, render.ErrMissingTranslator) {
		t.Fatalf("handler error = %v, want %v", gotErr, render.ErrMissingTranslator)
	}
}

func TestKey(t *testing.T) {
	if got := render.Key("", "pluginname"); got != "pluginname" {
		t.Fatalf("Key without component = %q", got)
	}
	if got := render.Key(" mod ", " name "); got != "mod:name" {
		t.Fatalf("Key = %q, want mod:name", got)
	}
}

func TestTemplateI18nFuncsResolveLocaleSources(t *testing.T) {
	tr := stubTranslator{"unilabeltype_accordion:segment": "Segment"}
	funcs := render.TemplateI18nFuncs(tr, render.TemplateI18nConfig{})

	getString, ok := funcs["get_string"].(func(any, string, string) string)
	if !ok {
		t.Fatalf("get_string has unexpected type %T", funcs["get_string"])
	}
	if got := getString("en-US", "segment", "unilabeltype_accordion"); got != "Segment" {
		t.Fatalf("get_string = %q", got)
	}
	if got := getString(map[string]any{"locale": "de"}, "missing", "unilabeltype_accordion"); got != "[[missing]]" {
		t.Fatalf("get_string missing = %q", got)
	}
	if got := getString("en-US", " ", "unilabeltype_accordion"); got != "" {
		t.Fatalf("get_string blank identifier = %q", got)
	}

	currentLocale := funcs["current_locale"].(func(any) string)
	cases := map[string]struct {
		src  any
		want string
	}{
		"string": {src: " fr-FR ", want: "fr-FR"},
		"map":    {src: map[string]string{"locale": "es"}, want: "es"},
		"source": {src: page{locale: "pt-BR"}, want: "pt-BR"},
		"nil":    {src: nil, want: ""},
		"other":  {src: 42, want: ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := currentLocale(tc.src); got != tc.want {
				t.Fatalf("current_locale = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTemplateI18nFuncsCustomName(t *testing.T) {
	funcs := render.TemplateI18nFuncs(nil, render.TemplateI18nConfig{FuncName: "t", LocaleKey: "lang"})
	if _, ok := funcs["t"]; !ok {
		t.Fatalf("expected custom helper name, got %v", funcs)
	}
	if _, ok := funcs["get_string"]; ok {
		t.Fatalf("default helper registered alongside custom name")
	}
	if got := funcs["current_locale"].(func(any) string)(map[string]any{"lang": "pt-BR"}); got != "pt-BR" {
		t.Fatalf("current_locale = %q", got)
	}
}

type page struct{ locale string }

func (p page) Locale() string { return p.locale }
