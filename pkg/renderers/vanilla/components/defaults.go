package components

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goliatone/go-unilabel/pkg/form"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry returns a registry with a template backed component for
// every form element type.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, elementType := range []form.ElementType{
		form.ElementCheckbox,
		form.ElementHeader,
		form.ElementEditor,
		form.ElementText,
		form.ElementHidden,
		form.ElementSubmit,
	} {
		registry.MustRegister(elementType, Descriptor{
			Renderer: templateComponentRenderer(templatePrefix + string(elementType) + ".tpl"),
		})
	}
	return registry
}

func templateComponentRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}
		rendered, err := data.Template.RenderTemplate(templateName, map[string]any{
			"field": fieldData(field),
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func fieldData(field Field) map[string]any {
	value := field.Value.Text
	if field.Element.ParamType == form.ParamInt {
		value = strconv.Itoa(field.Value.Number)
	}
	return map[string]any{
		"type":    string(field.Element.Type),
		"name":    field.Name,
		"id":      field.ID,
		"label":   field.Label,
		"help":    field.Help,
		"value":   value,
		"checked": field.Value.Checked,
		"format":  int(field.Value.Format),
		"rows":    field.Element.Attributes["rows"],
	}
}
