package gotemplate

import (
	"io/fs"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-unilabel/pkg/render"
)

// Option configures the engine before construction.
type Option func(*settings)

type settings struct {
	baseDir   string
	files     fs.FS
	extension string
	reload    bool
	funcs     map[string]any
	globals   map[string]any
	hooks     *gotemplatepkg.HookManager
}

func defaultSettings() *settings {
	return &settings{extension: ".tpl", hooks: gotemplatepkg.NewHooksManager()}
}

// WithBaseDir loads templates from a directory on disk. Templates found there
// shadow the ones of WithFS, so a deployment can override embedded markup one
// file at a time.
func WithBaseDir(dir string) Option {
	return func(s *settings) {
		s.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS, typically an embedded one.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// WithExtension overrides the default ".tpl" extension.
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		s.extension = "." + strings.TrimPrefix(ext, ".")
	}
}

// WithReload parses templates on every render instead of caching them.
func WithReload(reload bool) Option {
	return func(s *settings) {
		s.reload = reload
	}
}

// WithTemplateFunc registers filters (pongo2.FilterFunction values) or
// callable globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(s *settings) {
		for name, fn := range funcs {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if s.funcs == nil {
				s.funcs = map[string]any{}
			}
			s.funcs[name] = fn
		}
	}
}

// WithTranslator exposes t to templates through get_string and
// current_locale.
func WithTranslator(t render.Translator, cfg render.TemplateI18nConfig) Option {
	if t == nil {
		return func(*settings) {}
	}
	return WithTemplateFunc(render.TemplateI18nFuncs(t, cfg))
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		for key, value := range data {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if s.globals == nil {
				s.globals = map[string]any{}
			}
			s.globals[key] = value
		}
	}
}

// WithPreHook runs hook before every render. Pre hooks may replace the data
// and the template name; lower priorities run first. The hooks of
// github.com/goliatone/go-template/templatehooks plug in directly.
func WithPreHook(hook gotemplatepkg.PreHook, priority ...int) Option {
	return func(s *settings) {
		if hook != nil {
			s.hooks.AddPreHook(hook, priority...)
		}
	}
}

// WithPostHook runs hook on every rendered output before it is returned or
// written; lower priorities run first.
func WithPostHook(hook gotemplatepkg.PostHook, priority ...int) Option {
	return func(s *settings) {
		if hook != nil {
			s.hooks.AddPostHook(hook, priority...)
		}
	}
}
