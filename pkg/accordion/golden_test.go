package accordion_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/testsupport"
)

func TestContentMatchesGolden(t *testing.T) {
	store := testsupport.OpenStore(t)
	ct := newContentType(t, store)
	label := contenttype.Label{ID: 1, Intro: "<p>Intro</p>", IntroFormat: form.FormatHTML}
	mustSave(t, ct, label, submission(true,
		pair{Heading: "First", Content: "<p>One</p>"},
		pair{Heading: "Second", Content: "<p>Two <em>2</em></p>"},
	))

	got, err := ct.Content(testsupport.Context(), label, contenttype.CourseModule{ID: 9, Instance: 1}, newEngine(t))
	if err != nil {
		t.Fatalf("Content: %v", err)
	}

	testsupport.AssertGolden(t, filepath.Join("testdata", "accordion_view.golden.html"), got)
}
