// Package components maps form element types to the HTML fragments the
// vanilla renderer emits for them.
package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-unilabel/pkg/form"
	rendertemplate "github.com/goliatone/go-unilabel/pkg/render/template"
)

// Field is one control as it is rendered: an element resolved to its wire
// name, DOM id, slot label and current value.
type Field struct {
	Element form.Element
	// Name is the submitted parameter name, e.g. "x_heading[2]".
	Name  string
	ID    string
	Label string
	Help  string
	Value form.Value
}

// Renderer writes the HTML of one field into buf.
type Renderer func(buf *bytes.Buffer, field Field, data ComponentData) error

// ComponentData carries helpers available to component renderers.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
}

// Descriptor is the component of one element type plus the stylesheets the
// page must link when the component appears.
type Descriptor struct {
	Type        form.ElementType
	Renderer    Renderer
	Stylesheets []string
}

// Registry holds one descriptor per element type. Registering a type again
// replaces its component.
type Registry struct {
	mu     sync.RWMutex
	byType map[form.ElementType]Descriptor
}

func New() *Registry {
	return &Registry{byType: map[form.ElementType]Descriptor{}}
}

func (r *Registry) Register(elementType form.ElementType, descriptor Descriptor) error {
	elementType = canonical(elementType)
	if elementType == "" {
		return fmt.Errorf("components: element type is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", elementType)
	}
	descriptor.Type = elementType
	descriptor.Stylesheets = slices.Clone(descriptor.Stylesheets)

	r.mu.Lock()
	r.byType[elementType] = descriptor
	r.mu.Unlock()
	return nil
}

// MustRegister is Register that panics on error, for package level setup.
func (r *Registry) MustRegister(elementType form.ElementType, descriptor Descriptor) {
	if err := r.Register(elementType, descriptor); err != nil {
		panic(err)
	}
}

// Lookup returns a copy of the descriptor registered for elementType.
func (r *Registry) Lookup(elementType form.ElementType) (Descriptor, bool) {
	r.mu.RLock()
	descriptor, ok := r.byType[canonical(elementType)]
	r.mu.RUnlock()
	if !ok {
		return Descriptor{}, false
	}
	descriptor.Stylesheets = slices.Clone(descriptor.Stylesheets)
	return descriptor, true
}

// Types lists the registered element types in sorted order.
func (r *Registry) Types() []form.ElementType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]form.ElementType, 0, len(r.byType))
	for elementType := range r.byType {
		out = append(out, elementType)
	}
	slices.Sort(out)
	return out
}

// Stylesheets collects the stylesheets of the used element types, first use
// first, each href once.
func (r *Registry) Stylesheets(used []form.ElementType) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, elementType := range used {
		for _, href := range r.byType[canonical(elementType)].Stylesheets {
			if href != "" && !slices.Contains(out, href) {
				out = append(out, href)
			}
		}
	}
	return out
}

func canonical(elementType form.ElementType) form.ElementType {
	return form.ElementType(strings.ToLower(strings.TrimSpace(string(elementType))))
}
