package gotemplate_test

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gotemplatepkg "github.com/goliatone/go-template"
	"github.com/goliatone/go-template/templatehooks"

	"github.com/goliatone/go-unilabel/pkg/render"
	"github.com/goliatone/go-unilabel/pkg/render/template/gotemplate"
	"github.com/goliatone/go-unilabel/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.Tee(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if want := "Hello Ada!"; result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != result {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", result, written)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "staging" {
		t.Fatalf("render = %q, want staging", result)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_unilabel", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout_unilabel", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatal("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("render = %q, want ADA!", result)
	}
}

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestEngineConvertsStructData(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("struct-data.tpl", struct {
		Items []item `json:"items"`
	}{
		Items: []item{{ID: 12, Title: " first "}, {ID: 13, Title: "second"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "12:first;13:second;"; result != want {
		t.Fatalf("render = %q, want %q", result, want)
	}
}

func TestEngineRenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "1-two" {
		t.Fatalf("render = %q, want 1-two", result)
	}
}

func TestEnginePreHookSuppliesDefaults(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithPreHook(templatehooks.NewCommonHooks().SetDefaultsHook(map[string]any{"name": "guest"})),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Hello guest!"; got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}

	got, err = engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Hello Ada!"; got != want {
		t.Fatalf("caller value overridden: %q, want %q", got, want)
	}
}

func TestEnginePreHookRenamesTemplate(t *testing.T) {
	engine := newEngine(t)
	engine.RegisterPreHook(func(ctx *gotemplatepkg.HookContext) error {
		if ctx.Metadata["ext"] != ".tpl" {
			return fmt.Errorf("ext metadata = %v", ctx.Metadata["ext"])
		}
		if ctx.TemplateName == "greeting" {
			ctx.TemplateName = "hello"
		}
		return nil
	})

	got, err := engine.RenderTemplate("greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" {
		t.Fatalf("render = %q", got)
	}
}

func TestEnginePostHooksRewriteOutputInPriorityOrder(t *testing.T) {
	engine := newEngine(t)
	engine.RegisterPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
		return ctx.Output + "]", nil
	}, 20)
	engine.RegisterPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
		return "[" + strings.ToUpper(ctx.Output), nil
	}, 10)
	engine.RegisterPostHook(templatehooks.NewCommonHooks().RemoveTrailingWhitespaceHook(), 0)

	result, written := testsupport.Tee(t, func(w io.Writer) (string, error) {
		return engine.RenderString("{{ a }}  \n{{ b }}\t", map[string]any{"a": "x", "b": "y"}, w)
	})
	if want := "[X\nY]"; result != want {
		t.Fatalf("render = %q, want %q", result, want)
	}
	if written != result {
		t.Fatalf("writer got %q, want the hooked output %q", written, result)
	}
}

func TestEngineHookErrors(t *testing.T) {
	boom := errors.New("boom")

	pre := newEngine(t)
	pre.RegisterPreHook(templatehooks.NewCommonHooks().ValidateDataHook([]string{"name"}))
	if _, err := pre.RenderTemplate("hello", map[string]any{}); err == nil {
		t.Fatal("expected pre hook error for missing key")
	}

	post := newEngine(t)
	post.RegisterPostHook(func(*gotemplatepkg.HookContext) (string, error) { return "", boom })
	var sink strings.Builder
	_, err := post.RenderTemplate("hello", map[string]any{"name": "Ada"}, &sink)
	if !errors.Is(err, boom) {
		t.Fatalf("post hook err = %v, want %v", err, boom)
	}
	if sink.Len() != 0 {
		t.Fatalf("writer received %q after a failed post hook", sink.String())
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected error without base dir or fs")
	}
}

func TestEngineMissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

type labelFormat int

type view struct {
	Format  labelFormat       `json:"format"`
	Tags    []string          `json:"tags"`
	Counts  map[string]uint16 `json:"counts"`
	Missing *item             `json:"missing"`
}

func TestEngineNormalisesNamedAndNestedValues(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderString(
		`{{ format }}|{% for tag in tags %}{{ tag }},{% endfor %}|{{ counts.a }}|{% if missing %}x{% endif %}|{{ ratio }}`,
		map[string]any{
			"format": labelFormat(4),
			"tags":   []string{"a", "b"},
			"counts": map[string]uint16{"a": 3},
			"ratio":  2.5,
		},
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "4|a,b,|3||2.500000"; result != want {
		t.Fatalf("render = %q, want %q", result, want)
	}

	result, err = engine.RenderString(`{{ format }}/{{ tags|length }}`, view{Format: 2, Tags: []string{"x"}})
	if err != nil {
		t.Fatalf("render struct: %v", err)
	}
	if result != "2/1" {
		t.Fatalf("render struct = %q", result)
	}
}

func TestEngineRejectsNonObjectData(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderString("{{ a }}", []string{"a"}); err == nil {
		t.Fatal("expected error for slice view data")
	}
}

func TestEngineTranslator(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	translator := testsupport.MapTranslator{"unilabeltype_accordion:nocontent": "Nothing yet"}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithTranslator(translator, render.TemplateI18nConfig{}),
		gotemplate.WithGlobalData(map[string]any{"locale": "en-US"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderString(`{{ get_string(locale, "nocontent", "unilabeltype_accordion") }}`, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Nothing yet" {
		t.Fatalf("get_string = %q", result)
	}
}

func TestEngineBaseDirShadowsFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Hi {{ name }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(dir),
		gotemplate.WithFS(templatesFS),
		gotemplate.WithReload(true),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	renderHello := func() string {
		t.Helper()
		out, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		return out
	}
	if got := renderHello(); got != "Hi Ada" {
		t.Fatalf("override = %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Hey {{ name }}"), 0o644); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}
	if got := renderHello(); got != "Hey Ada" {
		t.Fatalf("reload = %q", got)
	}

	if out, err := engine.RenderTemplate("use-global", nil); err != nil || out != "" {
		t.Fatalf("fs fallback = %q, %v", out, err)
	}
}
