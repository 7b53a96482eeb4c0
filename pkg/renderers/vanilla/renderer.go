// Package vanilla renders settings forms as server side HTML.
package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/render"
	rendertemplate "github.com/goliatone/go-unilabel/pkg/render/template"
	"github.com/goliatone/go-unilabel/pkg/render/template/gotemplate"
	"github.com/goliatone/go-unilabel/pkg/renderers/vanilla/components"
)

const formTemplate = "templates/form.tpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the component registry.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithStylesheet links an extra stylesheet before the form.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(href); trimmed != "" {
			cfg.stylesheets = append(cfg.stylesheets, trimmed)
		}
	}
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	stylesheets []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		registry:    cfg.registry,
		stylesheets: cfg.stylesheets,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the form with options.Values as current values. Repeat groups
// render their effective slot count and carry it in their hidden count field.
func (r *Renderer) Render(_ context.Context, f *form.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if f == nil {
		return nil, fmt.Errorf("vanilla renderer: form is nil")
	}

	state := &renderState{
		renderer: r,
		options:  options,
		counts:   repeatCounts(f),
		used:     map[form.ElementType]struct{}{},
	}

	var body bytes.Buffer
	for _, item := range f.Items {
		var err error
		switch {
		case item.Element != nil:
			value, _ := options.Values.Get(item.Element.Name)
			err = state.renderElement(&body, *item.Element, -1, value)
		case item.Repeat != nil:
			err = state.renderRepeat(&body, item.Repeat)
		}
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
	}

	stylesheets := append([]string(nil), r.stylesheets...)
	stylesheets = append(stylesheets, r.registry.Stylesheets(state.order)...)

	hidden := make([]any, 0, len(options.Hidden))
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	submitLabel := render.StringWithFallback(options.Translator, options.Locale, "core", "savechanges",
		func(string, string, []any, error) string { return "Save changes" })

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form_id":      f.ID,
		"action":       f.Action,
		"hidden":       hidden,
		"body":         body.String(),
		"stylesheets":  toAny(stylesheets),
		"submit_label": submitLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type renderState struct {
	renderer *Renderer
	options  render.RenderOptions
	counts   map[string]int
	used     map[form.ElementType]struct{}
	order    []form.ElementType
}

func (s *renderState) renderRepeat(buf *bytes.Buffer, group *form.Repeat) error {
	fmt.Fprintf(buf, "  <fieldset class=\"unilabel-repeat\" data-count-field=\"%s\" data-count=\"%d\">\n",
		html.EscapeString(group.CountField), group.Count)

	for slot := 0; slot < group.Count; slot++ {
		for _, el := range group.Elements {
			value, _ := s.options.Values.At(el.Name, slot)
			el.Label = group.LabelFor(el, slot)
			if err := s.renderElement(buf, el, slot, value); err != nil {
				return err
			}
		}
	}

	if group.AddMoreField != "" {
		addMore := form.Element{Type: form.ElementSubmit, Name: group.AddMoreField, Label: group.AddMoreLabel}
		if !group.AddButtonInside {
			buf.WriteString("  </fieldset>\n")
			return s.renderElement(buf, addMore, -1, form.Value{})
		}
		if err := s.renderElement(buf, addMore, -1, form.Value{}); err != nil {
			return err
		}
	}
	buf.WriteString("  </fieldset>\n")
	return nil
}

func (s *renderState) renderElement(buf *bytes.Buffer, el form.Element, slot int, value form.Value) error {
	descriptor, ok := s.renderer.registry.Lookup(el.Type)
	if !ok {
		return fmt.Errorf("component %q not registered for element %q", el.Type, el.Name)
	}
	if count, isCount := s.counts[el.Name]; isCount && slot < 0 {
		value = form.Number(count)
	}

	field := components.Field{
		Element: el,
		Name:    form.FieldName(el.Name, slot),
		ID:      controlID(el.Name, slot),
		Label:   el.Label,
		Value:   value,
	}
	if el.Help != nil {
		field.Help = render.String(s.options.Translator, s.options.Locale, el.Help.Component, el.Help.Identifier+"_help")
	}

	s.markUsed(descriptor.Type)
	return descriptor.Renderer(buf, field, components.ComponentData{Template: s.renderer.templates})
}

func (s *renderState) markUsed(elementType form.ElementType) {
	if _, ok := s.used[elementType]; ok {
		return
	}
	s.used[elementType] = struct{}{}
	s.order = append(s.order, elementType)
}

func repeatCounts(f *form.Form) map[string]int {
	out := map[string]int{}
	for _, group := range f.Repeats() {
		out[group.CountField] = group.Count
	}
	return out
}

func controlID(name string, slot int) string {
	id := "id_" + strings.TrimSpace(name)
	if slot >= 0 {
		id += "_" + strconv.Itoa(slot)
	}
	return id
}

func toAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
