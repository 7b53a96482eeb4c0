package accordion

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
)

var errFormRequired = errors.New("accordion: form is required")

// AddFormFragment appends the accordion settings: the show-intro checkbox,
// the section header and the repeated segment group. The initial slot count
// comes from RepeatCount over the stored segments; a submission carried by f
// may change it.
func (c *ContentType) AddFormFragment(ctx context.Context, f *form.Form, fc contenttype.FormContext) error {
	if f == nil {
		return errFormRequired
	}
	state, err := c.load(ctx, fc.Label.ID)
	if err != nil {
		return err
	}

	if err := f.AddElement(form.Element{
		Type:  form.ElementCheckbox,
		Name:  FieldShowIntro,
		Label: c.str("showunilabeltext"),
	}); err != nil {
		return fmt.Errorf("accordion: add form fragment: %w", err)
	}
	if err := f.AddElement(form.Element{
		Type:  form.ElementHeader,
		Name:  FieldHeader,
		Label: c.str("pluginname"),
	}); err != nil {
		return fmt.Errorf("accordion: add form fragment: %w", err)
	}
	if err := f.AddHelpButton(FieldHeader, "pluginname", Namespace); err != nil {
		return fmt.Errorf("accordion: add form fragment: %w", err)
	}

	group := form.Repeat{
		Elements: []form.Element{
			{Type: form.ElementHeader, Name: FieldSegmentHeader, Label: c.str("segment") + "-" + form.RepeatPlaceholder},
			{Type: form.ElementEditor, Name: FieldHeading, Label: c.str("heading") + "-" + form.RepeatPlaceholder, Attributes: map[string]string{"rows": "2"}},
			{Type: form.ElementEditor, Name: FieldContent, Label: c.str("content") + "-" + form.RepeatPlaceholder, Attributes: map[string]string{"rows": "10"}},
		},
		Count:           RepeatCount(len(state.segments)),
		MaxCount:        MaxSegments,
		CountField:      FieldCount,
		AddMoreField:    FieldAddMore,
		AddMoreStep:     DefaultRepeatCount,
		AddMoreLabel:    c.str("addmoresegments"),
		AddButtonInside: true,
	}
	options := map[string]form.ElementOptions{
		FieldHeading: {
			ParamType: form.ParamRaw,
			Help:      &form.HelpButton{Identifier: "heading", Component: Namespace},
		},
		FieldContent: {
			ParamType: form.ParamRaw,
			Help:      &form.HelpButton{Identifier: "content", Component: Namespace},
		},
	}
	if _, err := f.Repeat(group, options); err != nil {
		return fmt.Errorf("accordion: add segment group: %w", err)
	}
	return nil
}
