// Package gotemplate implements template.TemplateRenderer on a pongo2
// template set.
package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-unilabel/pkg/render/template"
)

var errNilEngine = errors.New("gotemplate: engine is nil")

// Engine renders templates from a base dir and/or an fs.FS.
type Engine struct {
	mu     sync.RWMutex
	set    *pongo2.TemplateSet
	cache  map[string]*pongo2.Template
	ext    string
	reload bool
	hooks  *gotemplatepkg.HookManager
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Either a base dir or an fs.FS is required.
func New(options ...Option) (*Engine, error) {
	s := defaultSettings()
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.baseDir == "" && s.files == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if s.baseDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(s.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: base dir %q: %w", s.baseDir, err)
		}
		loaders = append(loaders, local)
	}
	if s.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(s.files))
	}

	set := pongo2.NewSet("unilabel", loaders...)
	set.Debug = s.reload
	e := &Engine{
		set:    set,
		cache:  map[string]*pongo2.Template{},
		ext:    s.extension,
		reload: s.reload,
		hooks:  s.hooks,
	}
	registerDefaultFilters()

	if err := e.GlobalContext(s.globals); err != nil {
		return nil, fmt.Errorf("gotemplate: global data: %w", err)
	}
	for name, fn := range s.funcs {
		if err := e.addFunc(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: template func %q: %w", name, err)
		}
	}
	return e, nil
}

// Render renders name as inline content when it holds template tags and as
// a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders a template by path; the extension is optional.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	call := e.newCall(name, "", data)
	if err := e.before(call); err != nil {
		return "", err
	}

	path := call.TemplateName
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	if call.Output, err = e.run(tmpl, call.Data, "template "+path); err != nil {
		return "", err
	}
	return e.after(call, out)
}

// RenderString renders inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	call := e.newCall("", content, data)
	if err := e.before(call); err != nil {
		return "", err
	}

	tmpl, err := e.set.FromString(call.Template)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	if call.Output, err = e.run(tmpl, call.Data, "template string"); err != nil {
		return "", err
	}
	return e.after(call, out)
}

// RegisterPreHook adds a pre hook after construction.
func (e *Engine) RegisterPreHook(hook gotemplatepkg.PreHook, priority ...int) {
	if e != nil && e.hooks != nil && hook != nil {
		e.hooks.AddPreHook(hook, priority...)
	}
}

// RegisterPostHook adds a post hook after construction.
func (e *Engine) RegisterPostHook(hook gotemplatepkg.PostHook, priority ...int) {
	if e != nil && e.hooks != nil && hook != nil {
		e.hooks.AddPostHook(hook, priority...)
	}
}

// RegisterFilter registers a filter. pongo2 keeps filters process-wide, so a
// name can be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) newCall(name, content string, data any) *gotemplatepkg.HookContext {
	return &gotemplatepkg.HookContext{
		TemplateName: name,
		Template:     content,
		Data:         data,
		Metadata:     map[string]any{"ext": e.ext},
	}
}

func (e *Engine) before(call *gotemplatepkg.HookContext) error {
	call.IsPreHook = true
	for _, hook := range e.hooks.PreHooks() {
		if err := hook(call); err != nil {
			return fmt.Errorf("gotemplate: pre hook for %q: %w", call.TemplateName, err)
		}
	}
	call.IsPreHook = false
	return nil
}

// after runs the post hooks over call.Output and writes the result to out.
func (e *Engine) after(call *gotemplatepkg.HookContext, out []io.Writer) (string, error) {
	for _, hook := range e.hooks.PostHooks() {
		output, err := hook(call)
		if err != nil {
			return "", fmt.Errorf("gotemplate: post hook for %q: %w", call.TemplateName, err)
		}
		call.Output = output
	}
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, call.Output); err != nil {
			return "", err
		}
	}
	return call.Output, nil
}

func (e *Engine) run(tmpl *pongo2.Template, data any, what string) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s: convert data: %w", what, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", what, err)
	}
	return buf.String(), nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	if e.reload {
		tmpl, err := e.set.FromFile(path)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
		}
		return tmpl, nil
	}

	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func (e *Engine) addFunc(name string, fn any) error {
	if fn == nil {
		return nil
	}
	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(name) {
			return nil
		}
		return pongo2.RegisterFilter(name, filter)
	}
	if reflect.ValueOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("%T is not callable", fn)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals[name] = fn
	return nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(strings.TrimSpace(in.String())), nil
		})
	}
}
