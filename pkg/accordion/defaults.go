package accordion

import (
	"context"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
)

// FormDefaults returns data extended with the stored accordion settings.
// Without a stored accordion only the show-intro default from the plugin
// configuration is set. Stored segments fill the heading and content slots
// in id order as HTML editor values.
func (c *ContentType) FormDefaults(ctx context.Context, data form.Values, label contenttype.Label) (form.Values, error) {
	state, err := c.load(ctx, label.ID)
	if err != nil {
		return form.Values{}, err
	}

	out := data.Clone()
	if state.record == nil {
		out.Set(FieldShowIntro, form.Checkbox(c.plugin.ShowIntro))
		return out, nil
	}

	out.Set(FieldShowIntro, form.Checkbox(state.record.ShowIntro))
	for index, segment := range state.segments {
		out.SetAt(FieldHeading, index, form.Editor(segment.Heading, form.FormatHTML))
		out.SetAt(FieldContent, index, form.Editor(segment.Content, form.FormatHTML))
	}
	return out, nil
}
