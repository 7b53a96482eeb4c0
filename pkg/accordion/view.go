package accordion

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/render/template"
	"github.com/goliatone/go-unilabel/pkg/storage"
)

var errRendererRequired = errors.New("accordion: template renderer is required")

// Content renders the label body. Labels without an accordion render the
// "nocontent" message in place of the intro. Segments missing a heading or a
// content are skipped.
func (c *ContentType) Content(ctx context.Context, label contenttype.Label, cm contenttype.CourseModule, renderer template.TemplateRenderer) (string, error) {
	if renderer == nil {
		return "", errRendererRequired
	}
	state, err := c.load(ctx, label.ID)
	if err != nil {
		return "", err
	}

	view, err := c.viewData(state, label, cm)
	if err != nil {
		return "", err
	}

	out, err := renderer.RenderTemplate(TemplateName, view)
	if err != nil {
		return "", fmt.Errorf("accordion: render label %d: %w", label.ID, err)
	}
	return out, nil
}

func (c *ContentType) viewData(state loadedState, label contenttype.Label, cm contenttype.CourseModule) (map[string]any, error) {
	if state.record == nil {
		return map[string]any{
			"intro":    c.str("nocontent"),
			"cmid":     cm.ID,
			"segments": []any{},
		}, nil
	}

	intro := ""
	if state.record.ShowIntro {
		formatted, err := formatText(c.sanitizer, label.Intro, label.IntroFormat)
		if err != nil {
			return nil, fmt.Errorf("accordion: format intro of label %d: %w", label.ID, err)
		}
		intro = formatted
	}

	return map[string]any{
		"showintro": state.record.ShowIntro,
		"intro":     intro,
		"segments":  c.segmentViews(state.segments),
		"cmid":      cm.ID,
		"plugin":    Namespace,
	}, nil
}

func (c *ContentType) segmentViews(segments []storage.Segment) []any {
	out := make([]any, 0, len(segments))
	for _, segment := range segments {
		if !segment.Renderable() {
			continue
		}
		out = append(out, map[string]any{
			"id":      segment.ID,
			"heading": c.sanitizer.Sanitize(segment.Heading),
			"content": c.sanitizer.Sanitize(segment.Content),
		})
	}
	return out
}
