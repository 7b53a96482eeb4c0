// Package unilabel assembles the accordion content type with its default
// collaborators: the SQLite store, the pongo2 view engine, the message
// catalogs and the HTML settings form renderer.
package unilabel

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/goliatone/go-template/templatehooks"
	"go.uber.org/zap"

	component "github.com/goliatone/go-unilabel/components/unilabel"
	"github.com/goliatone/go-unilabel/internal/i18n"
	"github.com/goliatone/go-unilabel/pkg/accordion"
	"github.com/goliatone/go-unilabel/pkg/config"
	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/render"
	"github.com/goliatone/go-unilabel/pkg/render/template/gotemplate"
	"github.com/goliatone/go-unilabel/pkg/renderers/vanilla"
	"github.com/goliatone/go-unilabel/pkg/storage"
	"github.com/goliatone/go-unilabel/pkg/storage/sqlite"
)

// EmbeddedTemplates exposes the built-in view templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return accordion.TemplatesFS()
}

// FormTemplates exposes the built-in settings form templates.
func FormTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// Option customises Open.
type Option func(*Runtime)

// WithLogger sets the logger handed to every collaborator.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithStore uses an already opened store instead of opening
// Config.DatabasePath. The runtime does not close it.
func WithStore(store storage.Store) Option {
	return func(r *Runtime) {
		r.Store = store
	}
}

// Runtime holds the wired content types and their collaborators.
type Runtime struct {
	Config     config.Config
	Store      storage.Store
	Registry   *contenttype.Registry
	Templates  *gotemplate.Engine
	Forms      *vanilla.Renderer
	Translator render.Translator
	Logger     *zap.Logger

	closer func() error
}

// Open wires a runtime from cfg.
func Open(cfg config.Config, options ...Option) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(rt)
	}

	if rt.Store == nil {
		store, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("unilabel: open store: %w", err)
		}
		rt.Store = store
		rt.closer = store.Close
	}

	bundle, err := i18n.Load(accordion.LocalesFS())
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("unilabel: load messages: %w", err)
	}
	rt.Translator = bundle

	engineOpts := []gotemplate.Option{
		gotemplate.WithFS(accordion.TemplatesFS()),
		gotemplate.WithTranslator(bundle, render.TemplateI18nConfig{}),
		gotemplate.WithGlobalData(map[string]any{"locale": cfg.Locale}),
		gotemplate.WithPostHook(templatehooks.NewCommonHooks().RemoveTrailingWhitespaceHook()),
	}
	if cfg.TemplatesDir != "" {
		engineOpts = append(engineOpts,
			gotemplate.WithBaseDir(cfg.TemplatesDir),
			gotemplate.WithReload(cfg.TemplatesReload),
		)
	}
	rt.Templates, err = gotemplate.New(engineOpts...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("unilabel: view templates: %w", err)
	}

	rt.Forms, err = vanilla.New()
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("unilabel: form renderer: %w", err)
	}

	ct, err := accordion.New(
		accordion.WithStore(rt.Store),
		accordion.WithConfig(cfg),
		accordion.WithTranslator(bundle),
		accordion.WithLocale(cfg.Locale),
		accordion.WithLogger(rt.Logger),
	)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Registry = contenttype.NewRegistry()
	if err := rt.Registry.Register(ct); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// Close releases the store when Open opened it.
func (r *Runtime) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	closer := r.closer
	r.closer = nil
	return closer()
}

// ContentType returns the registered content type for namespace.
func (r *Runtime) ContentType(namespace string) (contenttype.ContentType, error) {
	return r.Registry.Get(namespace)
}

// ResolveLabel looks the label up in the configuration. It implements the
// HTTP component's label resolver.
func (r *Runtime) ResolveLabel(_ context.Context, id int64) (contenttype.Label, contenttype.CourseModule, error) {
	lc, ok := r.Config.Label(id)
	if !ok {
		return contenttype.Label{}, contenttype.CourseModule{}, fmt.Errorf("label %d: %w", id, component.ErrLabelNotFound)
	}
	label := contenttype.Label{
		ID:          lc.ID,
		Course:      lc.Course,
		Name:        lc.Name,
		Intro:       lc.Intro,
		IntroFormat: form.TextFormat(lc.IntroFormat),
	}
	cmid := lc.CourseModID
	if cmid == 0 {
		cmid = lc.ID
	}
	return label, contenttype.CourseModule{ID: cmid, Instance: lc.ID}, nil
}

// IsLabelNotFound reports whether err comes from an unknown label id.
func IsLabelNotFound(err error) bool {
	return errors.Is(err, component.ErrLabelNotFound)
}

// Handler mounts the HTTP component on a new mux under Config.RoutePath.
func (r *Runtime) Handler(fns ...component.OptionFn) (http.Handler, error) {
	options := append([]component.OptionFn{
		component.WithRoutePath(r.Config.RoutePath),
		component.WithRegistry(r.Registry),
		component.WithLabelResolver(r),
		component.WithTemplates(r.Templates),
		component.WithFormRenderer(r.Forms),
		component.WithTranslator(r.Translator, r.Config.Locale),
		component.WithLogger(r.Logger),
	}, fns...)

	mux := http.NewServeMux()
	if _, err := component.New(options...).RegisterRoutes(mux, "/"); err != nil {
		return nil, err
	}
	return mux, nil
}
