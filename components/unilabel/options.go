package unilabel

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/render"
	"github.com/goliatone/go-unilabel/pkg/render/template"
)

// DefaultRoutePath is the route mounted under the base path.
const DefaultRoutePath = "/unilabel"

// GuardFunc authorises a request. Returning an HTTPError selects the status
// code; any other error answers 403.
type GuardFunc func(r *http.Request) error

// LabelResolver loads the host label and its course module.
type LabelResolver interface {
	ResolveLabel(ctx context.Context, id int64) (contenttype.Label, contenttype.CourseModule, error)
}

// LabelResolverFunc adapts a function to LabelResolver.
type LabelResolverFunc func(ctx context.Context, id int64) (contenttype.Label, contenttype.CourseModule, error)

// ResolveLabel implements LabelResolver.
func (fn LabelResolverFunc) ResolveLabel(ctx context.Context, id int64) (contenttype.Label, contenttype.CourseModule, error) {
	return fn(ctx, id)
}

// Options configures the handler.
type Options struct {
	RoutePath string
	Guard     GuardFunc

	Registry     *contenttype.Registry
	Labels       LabelResolver
	Templates    template.TemplateRenderer
	FormRenderer render.Renderer

	Locale     string
	Translator render.Translator
	Logger     *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: DefaultRoutePath,
		Logger:    zap.NewNop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = DefaultRoutePath
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRegistry(registry *contenttype.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

func WithLabelResolver(labels LabelResolver) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Labels = labels
	}
}

// WithTemplates sets the renderer used for label views.
func WithTemplates(templates template.TemplateRenderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Templates = templates
	}
}

// WithFormRenderer sets the renderer used for settings forms.
func WithFormRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormRenderer = renderer
	}
}

func WithTranslator(t render.Translator, locale string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Translator = t
		o.Locale = locale
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
