package accordion_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-unilabel/pkg/accordion"
	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/testsupport"
)

func TestSettingsFromValuesWithoutCount(t *testing.T) {
	values := form.NewValues()
	values.SetAt(accordion.FieldContent, 1, form.Editor("c1", form.FormatHTML))

	got := accordion.SettingsFromValues(values)
	want := accordion.Settings{
		Count: 2,
		Segments: []accordion.SegmentInput{
			{Index: 0},
			{Index: 1, Content: form.Editor("c1", form.FormatHTML)},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsFromSubmittedForm(t *testing.T) {
	ct := newContentType(t, testsupport.OpenStore(t))
	posted := url.Values{
		accordion.FieldShowIntro:               {"0", "1"},
		accordion.FieldCount:                   {"3"},
		accordion.FieldHeading + "[0][text]":   {"First"},
		accordion.FieldHeading + "[0][format]": {"1"},
		accordion.FieldContent + "[0][text]":   {"<p>one</p>"},
		accordion.FieldHeading + "[2][text]":   {"Third"},
	}

	f := form.New("settings", form.WithSubmission(form.URLSubmission(posted)))
	if err := ct.AddFormFragment(testsupport.Context(), f, contenttype.FormContext{Label: contenttype.Label{ID: 1}}); err != nil {
		t.Fatalf("AddFormFragment: %v", err)
	}

	settings := accordion.SettingsFromValues(form.ParseURL(f, posted))
	if !settings.ShowIntro || settings.Count != 3 || len(settings.Segments) != 3 {
		t.Fatalf("settings = %+v", settings)
	}
	if settings.Segments[0].Heading.Text != "First" || settings.Segments[0].Content.Text != "<p>one</p>" {
		t.Fatalf("slot 0 = %+v", settings.Segments[0])
	}
	if settings.Segments[1] != (accordion.SegmentInput{Index: 1}) {
		t.Fatalf("slot 1 = %+v, want blank", settings.Segments[1])
	}
	if settings.Segments[2].Heading.Text != "Third" {
		t.Fatalf("slot 2 = %+v", settings.Segments[2])
	}
}

func TestSettingsFromValuesBoundsSlotCount(t *testing.T) {
	values := form.NewValues()
	values.Set(accordion.FieldCount, form.Number(1<<62))
	values.SetAt(accordion.FieldHeading, 0, form.Editor("kept", form.FormatHTML))

	settings := accordion.SettingsFromValues(values)
	if settings.Count != 1<<62 {
		t.Fatalf("count = %d, want the submitted number", settings.Count)
	}
	if len(settings.Segments) != accordion.MaxSegments {
		t.Fatalf("segments = %d, want %d", len(settings.Segments), accordion.MaxSegments)
	}
	if err := settings.Validate(); !errors.Is(err, accordion.ErrTooManySegments) {
		t.Fatalf("Validate = %v, want ErrTooManySegments", err)
	}
	if err := (accordion.Settings{Count: accordion.MaxSegments}).Validate(); err != nil {
		t.Fatalf("Validate at limit = %v", err)
	}
}

func TestSaveContentRejectsOversizedCount(t *testing.T) {
	store := testsupport.OpenStore(t)
	ct := newContentType(t, store)
	label := contenttype.Label{ID: 41}
	mustSave(t, ct, label, submission(true, pair{"Keep", "me"}))

	for _, count := range []int{1 << 62, accordion.MaxSegments + 1} {
		values := form.NewValues()
		values.Set(accordion.FieldShowIntro, form.Checkbox(false))
		values.Set(accordion.FieldCount, form.Number(count))

		ok, err := ct.SaveContent(testsupport.Context(), values, label)
		if !errors.Is(err, accordion.ErrTooManySegments) || !errors.Is(err, contenttype.ErrInvalidSubmission) {
			t.Fatalf("SaveContent(count=%d) error = %v", count, err)
		}
		if ok {
			t.Fatalf("SaveContent(count=%d) reported success", count)
		}
	}

	if diff := cmp.Diff([]pair{{"Keep", "me"}}, storedPairs(t, store, label.ID)); diff != "" {
		t.Fatalf("segments changed by rejected saves (-want +got):\n%s", diff)
	}
}

func TestAddFormFragmentIgnoresOversizedSubmittedCount(t *testing.T) {
	ct := newContentType(t, testsupport.OpenStore(t))
	posted := url.Values{accordion.FieldCount: {"4611686018427387904"}}

	f := form.New("settings", form.WithSubmission(form.URLSubmission(posted)))
	if err := ct.AddFormFragment(testsupport.Context(), f, contenttype.FormContext{Label: contenttype.Label{ID: 1}}); err != nil {
		t.Fatalf("AddFormFragment: %v", err)
	}
	group := f.Repeats()[0]
	if group.Count != accordion.DefaultRepeatCount || group.MaxCount != accordion.MaxSegments {
		t.Fatalf("group count/max = %d/%d", group.Count, group.MaxCount)
	}
	if err := f.SubmissionErr(); !errors.Is(err, form.ErrTooManySlots) {
		t.Fatalf("SubmissionErr = %v, want ErrTooManySlots", err)
	}
}
