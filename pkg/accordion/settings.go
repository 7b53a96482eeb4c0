package accordion

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
)

// ErrTooManySegments rejects settings with more than MaxSegments slots.
var ErrTooManySegments = fmt.Errorf("%w: too many segments", contenttype.ErrInvalidSubmission)

// SegmentInput is one submitted heading/content slot.
type SegmentInput struct {
	Index   int
	Heading form.Value
	Content form.Value
}

// Settings is the typed view of the accordion part of a settings submission.
type Settings struct {
	ShowIntro bool
	// Count is the number of slots the form showed. Every slot is saved,
	// blank ones included.
	Count    int
	Segments []SegmentInput
}

// SettingsFromValues reads the accordion fields of a submission. Without a
// submitted count the highest populated slot decides it. Slots without
// values become blank segments. Count keeps the submitted number but at most
// MaxSegments slots are read; Validate reports the excess.
func SettingsFromValues(values form.Values) Settings {
	var settings Settings
	if v, ok := values.Get(FieldShowIntro); ok {
		settings.ShowIntro = v.Checked
	}

	count := -1
	if v, ok := values.Get(FieldCount); ok {
		count = v.Number
	}
	if count < 0 {
		count = slotsUsed(values)
	}
	settings.Count = count

	for i := 0; i < min(count, MaxSegments); i++ {
		heading, _ := values.At(FieldHeading, i)
		content, _ := values.At(FieldContent, i)
		settings.Segments = append(settings.Segments, SegmentInput{
			Index:   i,
			Heading: heading,
			Content: content,
		})
	}
	return settings
}

// Validate checks the slot count against MaxSegments.
func (s Settings) Validate() error {
	if s.Count > MaxSegments {
		return fmt.Errorf("%w: %d slots, limit %d", ErrTooManySegments, s.Count, MaxSegments)
	}
	if s.Count < 0 {
		return errors.New("accordion: negative segment count")
	}
	return nil
}

// Values converts settings back into form values.
func (s Settings) Values() form.Values {
	values := form.NewValues()
	values.Set(FieldShowIntro, form.Checkbox(s.ShowIntro))
	values.Set(FieldCount, form.Number(s.Count))
	for _, segment := range s.Segments {
		values.SetAt(FieldHeading, segment.Index, segment.Heading)
		values.SetAt(FieldContent, segment.Index, segment.Content)
	}
	return values
}

func slotsUsed(values form.Values) int {
	used := 0
	for _, name := range []string{FieldHeading, FieldContent} {
		indexes := values.Indexes(name)
		if n := len(indexes); n > 0 && indexes[n-1]+1 > used {
			used = indexes[n-1] + 1
		}
	}
	return used
}
