package i18n

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func catalogFS(files map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, body := range files {
		out[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return out
}

const accordionEN = `locale: en-US
namespace: unilabeltype_accordion
messages:
  pluginname: Accordion
  nocontent: No content
  segment: Segment
`

func TestLoadAndTranslate(t *testing.T) {
	bundle, err := Load(catalogFS(map[string]string{
		"locales/en-US/unilabeltype_accordion.yaml": accordionEN,
		"locales/de/unilabeltype_accordion.yaml": `locale: de
namespace: unilabeltype_accordion
messages:
  segment: Abschnitt
`,
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff([]string{"de", "en-US"}, bundle.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	cases := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{name: "exact", locale: "en-US", key: "unilabeltype_accordion:pluginname", want: "Accordion"},
		{name: "regional falls back to base language", locale: "de-AT", key: "unilabeltype_accordion:segment", want: "Abschnitt"},
		{name: "missing key falls back to base locale", locale: "de", key: "unilabeltype_accordion:nocontent", want: "No content"},
		{name: "empty locale", locale: "", key: "unilabeltype_accordion:segment", want: "Segment"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := bundle.Translate(tc.locale, tc.key)
			if err != nil {
				t.Fatalf("Translate: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Translate = %q, want %q", got, tc.want)
			}
		})
	}

	if _, err := bundle.Translate("en-US", "unilabeltype_accordion:unknown"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "no files",
			files:   map[string]string{},
			wantErr: "no catalog files",
		},
		{
			name: "missing base locale",
			files: map[string]string{
				"locales/de/unilabeltype_accordion.yaml": "locale: de\nnamespace: unilabeltype_accordion\nmessages: {a: b}\n",
			},
			wantErr: "base locale",
		},
		{
			name: "locale mismatch",
			files: map[string]string{
				"locales/en-US/unilabeltype_accordion.yaml": "locale: en-GB\nnamespace: unilabeltype_accordion\n",
			},
			wantErr: "must match path locale",
		},
		{
			name: "namespace mismatch",
			files: map[string]string{
				"locales/en-US/unilabeltype_accordion.yaml": "locale: en-US\nnamespace: other\n",
			},
			wantErr: "must match file name",
		},
		{
			name: "invalid yaml",
			files: map[string]string{
				"locales/en-US/unilabeltype_accordion.yaml": "locale: [",
			},
			wantErr: "parse",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(catalogFS(tc.files))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Load error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadRejectsDuplicateKeysAcrossSources(t *testing.T) {
	first := catalogFS(map[string]string{"locales/en-US/unilabeltype_accordion.yaml": accordionEN})
	second := catalogFS(map[string]string{"locales/en-US/unilabeltype_accordion.yaml": accordionEN})

	_, err := Load(first, second)
	if err == nil || !strings.Contains(err.Error(), "duplicate key") {
		t.Fatalf("Load error = %v, want duplicate key", err)
	}
}

func TestNilBundleTranslate(t *testing.T) {
	var bundle *Bundle
	if _, err := bundle.Translate("en-US", "a:b"); err == nil {
		t.Fatalf("expected error from nil bundle")
	}
}
